package command

import (
	"context"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type CasesCommand struct {
	stats     core.StatsProvider
	formatter *ResponseFormatter
}

func NewCasesCommand(stats core.StatsProvider, formatter *ResponseFormatter) *CasesCommand {
	return &CasesCommand{
		stats:     stats,
		formatter: formatter,
	}
}

func (c *CasesCommand) Name() string {
	return "cases"
}

func (c *CasesCommand) Usage() string {
	return "!cases location"
}

func (c *CasesCommand) Description() string {
	return "Get up to date info on cases, optionally in a specific location." +
		" You can give a country code, country, state, county, region or city." +
		" E.g. !cases china"
}

func (c *CasesCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	location := req.Args
	if location == "" {
		location = "World"
	}

	logger := log.FromCtx(ctx)
	logger.Info().Str("location", location).Msg("responding to cases request")

	var warning string
	if err := c.stats.EnsureFresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to update data")
		warning = c.formatter.StaleDataWarning() + "\n\n"
	}

	matches := c.stats.Lookup(ctx, location)
	switch {
	case len(matches) == 0:
		return warning + c.formatter.NotFound(location), nil
	case len(matches) > core.DisambiguationLimit:
		return warning + c.formatter.TooManyMatches(location), nil
	case len(matches) > 1:
		return warning + c.formatter.Disambiguation(matches), nil
	}

	return warning + c.formatter.StatsReply(matches[0]), nil
}
