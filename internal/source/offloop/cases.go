package offloop

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

// Some feed rows use short or historical country names. Rename them to the
// common names the code-lookup chain resolves to.
var countryRenames = map[string]string{
	"US":                  "United States",
	"DRC":                 "Democratic Republic of the Congo",
	"UAE":                 "United Arab Emirates",
	"U.S. Virgin Islands": "United States Virgin Islands",
}

type Client struct {
	http      *http.Client
	casesURL  string
	groupsURL string
}

func NewClient(casesURL, groupsURL string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		casesURL:  casesURL,
		groupsURL: groupsURL,
	}
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}
	return resp.Body, nil
}

// FetchCases downloads and parses the case feed. Row format:
// Country;Province;Confirmed;Deaths;Recovered;LastUpdated (epoch millis).
func (c *Client) FetchCases(ctx context.Context) (map[string]*core.CountryRecord, error) {
	log.FromCtx(ctx).Debug().Str("url", c.casesURL).Msg("fetching case data")

	body, err := c.get(ctx, c.casesURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParseCases(ctx, body, time.Now().UTC())
}

// ParseCases reads the semicolon-separated case feed. A row whose Province
// is blank or repeats the Country carries that country's totals; anything
// else is an area breakdown. Blank numeric fields mean zero, and rows
// without a timestamp get stamped with now.
func ParseCases(ctx context.Context, r io.Reader, now time.Time) (map[string]*core.CountryRecord, error) {
	logger := log.FromCtx(ctx)

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read case feed header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"Country", "Province", "Confirmed", "Deaths", "Recovered", "LastUpdated"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("case feed missing %q column", name)
		}
	}

	countries := make(map[string]*core.CountryRecord)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read case feed row: %w", err)
		}
		if len(row) < len(header) {
			logger.Warn().Strs("row", row).Msg("skipping short case feed row")
			continue
		}

		country := row[col["Country"]]
		if renamed, ok := countryRenames[country]; ok {
			country = renamed
		}

		rec, ok := countries[country]
		if !ok {
			rec = &core.CountryRecord{Areas: make(map[string]core.CaseStats)}
			countries[country] = rec
		}

		stats := core.CaseStats{
			Cases:       parseCount(row[col["Confirmed"]]),
			Deaths:      parseCount(row[col["Deaths"]]),
			Recoveries:  parseCount(row[col["Recovered"]]),
			HasOutcomes: true,
			LastUpdate:  parseTimestamp(row[col["LastUpdated"]], now),
		}

		area := row[col["Province"]]
		if area == "" || strings.EqualFold(area, country) {
			if rec.Totals != nil {
				logger.Warn().Str("country", country).Msg("duplicate totals row")
			}
			stats := stats
			rec.Totals = &stats
		} else {
			rec.Areas[area] = stats
		}
	}

	return countries, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseTimestamp(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	msec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return now
	}
	return time.Unix(msec/1000, 0).UTC()
}
