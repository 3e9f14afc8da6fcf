package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pwr22/covbot/pkg/log"
)

type SourcesConfig struct {
	CasesURL  string `env:"COVBOT_CASES_URL" envDefault:"http://offloop.net/covid19h/unconfirmed.csv"`
	GroupsURL string `env:"COVBOT_GROUPS_URL" envDefault:"https://offloop.net/covid19h/groups.txt"`

	// UK breakdowns come from two ArcGIS extracts keyed by region name.
	UKNHSRegionsURL string `env:"COVBOT_UK_NHS_REGIONS_URL" envDefault:"https://www.arcgis.com/sharing/rest/content/items/ca796627a2294c51926865748c4a56e8/data"`
	UKRegionsURL    string `env:"COVBOT_UK_REGIONS_URL" envDefault:"https://www.arcgis.com/sharing/rest/content/items/b684319181f94875a6879bbc833ca3a6/data"`

	FetchTimeout    time.Duration `env:"COVBOT_FETCH_TIMEOUT" envDefault:"30s"`
	RefreshInterval time.Duration `env:"COVBOT_REFRESH_INTERVAL" envDefault:"15m"`
}

func NewSourcesConfig(ctx context.Context) *SourcesConfig {
	c := &SourcesConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Sources config")
	}
	return c
}
