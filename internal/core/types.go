package core

import "time"

const (
	BotName   = "CovBot"
	UserAgent = "CovBot/0.3"
	RepoURL   = "https://github.com/pwr22/covbot"
	IssuesURL = "https://github.com/pwr22/covbot/issues"
	Version   = "0.3.0"
)

// DisambiguationLimit is the most matches worth listing back to the user.
// Anything beyond it gets a "please be more specific" reply instead.
const DisambiguationLimit = 5

// CaseStats holds the counts reported for one location. Some feeds only
// publish confirmed cases; HasOutcomes marks whether deaths and recoveries
// were present in the source row.
type CaseStats struct {
	Cases       int64     `json:"cases"`
	Deaths      int64     `json:"deaths"`
	Recoveries  int64     `json:"recoveries"`
	HasOutcomes bool      `json:"has_outcomes"`
	LastUpdate  time.Time `json:"last_update"`
}

// CountryRecord is the per-country slice of a snapshot. Totals is nil when
// the feed published area rows but no country-level row.
type CountryRecord struct {
	Totals *CaseStats           `json:"totals,omitempty"`
	Areas  map[string]CaseStats `json:"areas"`
}

// Match is one lookup result: a display name such as "Hubei, China" plus
// the stats recorded for it.
type Match struct {
	Location string
	Stats    CaseStats
}
