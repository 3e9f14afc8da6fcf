package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/pwr22/covbot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"COVBOT_TELEGRAM_TOKEN,required,notEmpty"`
	// Admins may use !announce. Comma-separated user IDs.
	Admins []int64 `env:"COVBOT_TELEGRAM_ADMINS"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
