package command

import (
	"context"
	"fmt"

	"github.com/pwr22/covbot/internal/config"
	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type SourceCommand struct {
	sources *config.SourcesConfig
}

func NewSourceCommand(sources *config.SourcesConfig) *SourceCommand {
	return &SourceCommand{sources: sources}
}

func (c *SourceCommand) Name() string {
	return "source"
}

func (c *SourceCommand) Usage() string {
	return "!source"
}

func (c *SourceCommand) Description() string {
	return "Find out about my data sources and developers."
}

func (c *SourceCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	log.FromCtx(ctx).Info().Msg("responding to source request")

	return fmt.Sprintf(
		"I was created by Peter Roberts and MIT licensed on Github at %s."+
			" I fetch new data every %.0f minutes from %s, %s and %s."+
			" Risk estimates are based on the model at https://www.desmos.com/calculator/v0zif7tflm.",
		core.RepoURL,
		c.sources.RefreshInterval.Minutes(),
		c.sources.CasesURL, c.sources.UKNHSRegionsURL, c.sources.UKRegionsURL,
	), nil
}
