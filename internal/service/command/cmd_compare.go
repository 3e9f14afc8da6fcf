package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type CompareCommand struct {
	stats     core.StatsProvider
	formatter *ResponseFormatter
}

func NewCompareCommand(stats core.StatsProvider, formatter *ResponseFormatter) *CompareCommand {
	return &CompareCommand{
		stats:     stats,
		formatter: formatter,
	}
}

func (c *CompareCommand) Name() string {
	return "compare"
}

func (c *CompareCommand) Usage() string {
	return "!compare locations"
}

func (c *CompareCommand) Description() string {
	return "Compare up to date info on cases in multiple locations." +
		" If it looks bad on mobile try rotating into landscape mode." +
		" Separate the locations with semicolons (;)." +
		" You can give country codes, countries, states, counties, regions or cities." +
		" E.g. !compare cn;us;uk;it;de"
}

func (c *CompareCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	if strings.TrimSpace(req.Args) == "" {
		return fmt.Sprintf("Tell me which locations to compare, e.g. %s.", "!compare cn;us;uk"), nil
	}

	logger := log.FromCtx(ctx)
	logger.Info().Str("locations", req.Args).Msg("responding to compare request")

	var warning string
	if err := c.stats.EnsureFresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to update data")
		warning = c.formatter.StaleDataWarning() + "\n\n"
	}

	var results []core.Match
	for _, loc := range strings.Split(req.Args, ";") {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}

		matches := c.stats.Lookup(ctx, loc)
		switch {
		case len(matches) == 0:
			return warning + fmt.Sprintf("I cannot find a match for %s", loc), nil
		case len(matches) > core.DisambiguationLimit:
			return warning + c.formatter.TooManyMatches(loc), nil
		case len(matches) > 1:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Location
			}
			return warning + fmt.Sprintf("Multiple results for %s: %s. Please provide one.",
				loc, strings.Join(names, " - ")), nil
		}
		results = append(results, matches[0])
	}

	if len(results) == 0 {
		return warning + fmt.Sprintf("Tell me which locations to compare, e.g. %s.", "!compare cn;us;uk"), nil
	}

	return warning + c.formatter.CompareTable(results), nil
}
