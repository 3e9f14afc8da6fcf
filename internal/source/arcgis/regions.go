package arcgis

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

// Client reads the two UK regional breakdowns published as ArcGIS CSV
// extracts. Both share the shape GSS_CD,<name column>,TotalCases, with
// comma-grouped case counts.
type Client struct {
	http          *http.Client
	nhsRegionsURL string
	regionsURL    string
}

func NewClient(nhsRegionsURL, regionsURL string, timeout time.Duration) *Client {
	return &Client{
		http:          &http.Client{Timeout: timeout},
		nhsRegionsURL: nhsRegionsURL,
		regionsURL:    regionsURL,
	}
}

// FetchNHSRegions returns cases per NHS region.
func (c *Client) FetchNHSRegions(ctx context.Context) (map[string]int64, error) {
	return c.fetchRegions(ctx, c.nhsRegionsURL, "NHSRNm")
}

// FetchLocalAuthorities returns cases per upper-tier local authority.
func (c *Client) FetchLocalAuthorities(ctx context.Context) (map[string]int64, error) {
	return c.fetchRegions(ctx, c.regionsURL, "GSS_NM")
}

func (c *Client) fetchRegions(ctx context.Context, url, nameColumn string) (map[string]int64, error) {
	log.FromCtx(ctx).Debug().Str("url", url).Msg("fetching UK region data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	return ParseRegions(resp.Body, nameColumn)
}

func ParseRegions(r io.Reader, nameColumn string) (map[string]int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read region header: %w", err)
	}

	nameIdx, casesIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case nameColumn:
			nameIdx = i
		case "TotalCases":
			casesIdx = i
		}
	}
	if nameIdx < 0 || casesIdx < 0 {
		return nil, fmt.Errorf("region feed missing %q or TotalCases column", nameColumn)
	}

	regions := make(map[string]int64)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read region row: %w", err)
		}
		if len(row) <= nameIdx || len(row) <= casesIdx {
			continue
		}

		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}

		// Counts arrive formatted for display, e.g. "1,234".
		raw := strings.ReplaceAll(strings.TrimSpace(row[casesIdx]), ",", "")
		cases, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		regions[name] = cases
	}

	return regions, nil
}
