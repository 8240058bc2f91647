package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	MaturityCheckInterval time.Duration `mapstructure:"maturity-check-interval"`
	MaturedStakesLimit    uint64        `mapstructure:"matured-stakes-limit"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.MaturityCheckInterval <= 0 {
		return errors.New("maturity-check-interval must be positive")
	}

	if cfg.MaturedStakesLimit <= 0 {
		return errors.New("matured-stakes-limit must be positive")
	}

	return nil
}
