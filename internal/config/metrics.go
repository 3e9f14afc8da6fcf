package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/pwr22/covbot/pkg/log"
)

type MetricsConfig struct {
	Enabled    bool   `env:"COVBOT_METRICS_ENABLED" envDefault:"false"`
	ListenAddr string `env:"COVBOT_METRICS_ADDR" envDefault:":9090"`
}

func NewMetricsConfig(ctx context.Context) *MetricsConfig {
	c := &MetricsConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Metrics config")
	}
	return c
}
