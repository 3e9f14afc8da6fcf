package data

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pariz/gountries"
	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/internal/metrics"
	"github.com/pwr22/covbot/pkg/log"
)

var countryQuery = gountries.New()

type indexEntry struct {
	country string
	area    string // empty for a country-level entry
	display string // "Area, Country" or bare country name
	lower   string
}

// Store holds the current case snapshot behind a RWMutex. SetSnapshot swaps
// the whole dataset and rebuilds the location index; lookups never mutate.
type Store struct {
	mu        sync.RWMutex
	countries map[string]*core.CountryRecord
	groups    map[string][]string
	index     []indexEntry
	fetchedAt time.Time
}

func NewStore() *Store {
	return &Store{
		countries: make(map[string]*core.CountryRecord),
		groups:    make(map[string][]string),
	}
}

func (s *Store) SetSnapshot(countries map[string]*core.CountryRecord, fetchedAt time.Time) {
	index := buildIndex(countries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = countries
	s.index = index
	s.fetchedAt = fetchedAt
}

func (s *Store) SetGroups(groups map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

// FetchedAt reports when the snapshot was taken. ok is false before any
// data has been loaded.
func (s *Store) FetchedAt() (fetchedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt, !s.fetchedAt.IsZero()
}

func buildIndex(countries map[string]*core.CountryRecord) []indexEntry {
	var index []indexEntry
	for country, rec := range countries {
		index = append(index, indexEntry{
			country: country,
			display: country,
			lower:   strings.ToLower(country),
		})
		for area := range rec.Areas {
			display := area + ", " + country
			index = append(index, indexEntry{
				country: country,
				area:    area,
				display: display,
				lower:   strings.ToLower(display),
			})
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].display < index[j].display })
	return index
}

// Lookup runs the match chain: exact country code, exact country name,
// named group, exact area name, then substring match over the whole index.
// The first stage that produces anything wins.
func (s *Store) Lookup(ctx context.Context, query string) []core.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger := log.FromCtx(ctx)
	logger.Info().Str("query", query).Msg("looking up case data")

	matches := s.lookupLocked(ctx, strings.TrimSpace(query))
	metrics.LookupResults.WithLabelValues(lookupOutcome(len(matches))).Inc()
	return matches
}

func (s *Store) lookupLocked(ctx context.Context, query string) []core.Match {
	if query == "" {
		return nil
	}

	if m, resolved := s.matchCountryCode(ctx, query); m != nil {
		return m
	} else if resolved != "" {
		// The code resolved to a country we hold only area rows for.
		// Keep matching with the resolved name so those areas surface.
		query = resolved
	}
	if m := s.matchCountryName(ctx, query); m != nil {
		return m
	}
	if m := s.matchGroup(ctx, query); len(m) > 0 {
		return m
	}
	if m := s.matchArea(ctx, query); len(m) > 0 {
		return m
	}
	return s.matchWildcard(ctx, query)
}

func lookupOutcome(n int) string {
	switch {
	case n == 0:
		return "none"
	case n == 1:
		return "single"
	case n <= core.DisambiguationLimit:
		return "multiple"
	default:
		return "too_many"
	}
}

// matchCountryCode resolves an ISO alpha-2/alpha-3 code. When the resolved
// country is in the snapshot but has no national totals row, it returns no
// match plus the resolved name so the caller can keep walking the chain
// with it.
func (s *Store) matchCountryCode(ctx context.Context, query string) ([]core.Match, string) {
	if len(query) != 2 && len(query) != 3 {
		return nil, ""
	}

	logger := log.FromCtx(ctx)
	logger.Debug().Str("query", query).Msg("trying an exact country code match")

	cc := strings.ToUpper(query)
	if cc == "UK" {
		cc = "GB"
	}

	country, err := countryQuery.FindCountryByAlpha(cc)
	if err != nil {
		return nil, ""
	}
	logger.Debug().Str("code", cc).Str("country", country.Name.Common).Msg("resolved country code")

	name, rec := s.findCountry(country.Name.Common)
	if rec == nil {
		logger.Warn().Str("country", country.Name.Common).Msg("no data for resolved country")
		return nil, ""
	}
	if rec.Totals == nil {
		logger.Debug().Str("country", name).Msg("no totals for resolved country, matching on its name instead")
		return nil, name
	}
	return []core.Match{{Location: name, Stats: *rec.Totals}}, ""
}

func (s *Store) matchCountryName(ctx context.Context, query string) []core.Match {
	log.FromCtx(ctx).Debug().Str("query", query).Msg("trying an exact country match")

	name, rec := s.findCountry(query)
	if rec == nil || rec.Totals == nil {
		return nil
	}
	return []core.Match{{Location: name, Stats: *rec.Totals}}
}

// matchGroup expands a named country group, e.g. "scandinavia", into the
// totals of each member that has data.
func (s *Store) matchGroup(ctx context.Context, query string) []core.Match {
	var matches []core.Match
	for group, members := range s.groups {
		if !strings.EqualFold(group, query) {
			continue
		}
		log.FromCtx(ctx).Debug().Str("group", group).Int("members", len(members)).Msg("matched a country group")
		for _, member := range members {
			if name, rec := s.findCountry(member); rec != nil && rec.Totals != nil {
				matches = append(matches, core.Match{Location: name, Stats: *rec.Totals})
			}
		}
		break
	}
	return matches
}

func (s *Store) matchArea(ctx context.Context, query string) []core.Match {
	log.FromCtx(ctx).Debug().Str("query", query).Msg("trying an exact area match")

	var matches []core.Match
	for _, e := range s.index {
		if e.area != "" && strings.EqualFold(e.area, query) {
			matches = append(matches, core.Match{
				Location: e.display,
				Stats:    s.countries[e.country].Areas[e.area],
			})
		}
	}
	return matches
}

func (s *Store) matchWildcard(ctx context.Context, query string) []core.Match {
	log.FromCtx(ctx).Debug().Str("query", query).Msg("trying a wildcard location match")

	q := strings.ToLower(query)
	var matches []core.Match
	for _, e := range s.index {
		if !strings.Contains(e.lower, q) {
			continue
		}
		rec := s.countries[e.country]
		if e.area == "" {
			if rec.Totals == nil {
				continue
			}
			matches = append(matches, core.Match{Location: e.display, Stats: *rec.Totals})
		} else {
			matches = append(matches, core.Match{Location: e.display, Stats: rec.Areas[e.area]})
		}
	}
	return matches
}

// findCountry resolves a country name case-insensitively against the
// snapshot. Callers must hold at least a read lock.
func (s *Store) findCountry(name string) (string, *core.CountryRecord) {
	if rec, ok := s.countries[name]; ok {
		return name, rec
	}
	for country, rec := range s.countries {
		if strings.EqualFold(country, name) {
			return country, rec
		}
	}
	return "", nil
}
