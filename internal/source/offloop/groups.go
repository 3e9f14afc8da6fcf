package offloop

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pwr22/covbot/pkg/log"
)

// FetchGroups downloads the named country groups feed. Row format:
// group;country_1;country_2 ...
func (c *Client) FetchGroups(ctx context.Context) (map[string][]string, error) {
	log.FromCtx(ctx).Debug().Str("url", c.groupsURL).Msg("fetching country groups")

	body, err := c.get(ctx, c.groupsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParseGroups(body)
}

func ParseGroups(r io.Reader) (map[string][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	groups := make(map[string][]string)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read groups row: %w", err)
		}
		if len(row) < 2 {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		members := make([]string, 0, len(row)-1)
		for _, m := range row[1:] {
			if m = strings.TrimSpace(m); m != "" {
				members = append(members, m)
			}
		}
		groups[name] = members
	}

	return groups, nil
}
