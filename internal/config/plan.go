package config

import (
	"errors"
	"time"
)

// PlanConfig describes the single staking plan the ledger runs. The values
// are read once on first start and persisted; later edits to this section
// have no effect on an already created plan.
type PlanConfig struct {
	// Duration is the lock-up length. The enrollment deadline is fixed at
	// plan creation time plus this duration.
	Duration time.Duration `mapstructure:"duration"`
	// InterestRatePercent is the integer percentage applied to the principal
	// on claim, without compounding or proration.
	InterestRatePercent uint64 `mapstructure:"interest-rate-percent"`
}

func (cfg *PlanConfig) Validate() error {
	if cfg.Duration <= 0 {
		return errors.New("plan duration must be positive")
	}
	if cfg.Duration < time.Second {
		return errors.New("plan duration must be at least one second")
	}
	if cfg.InterestRatePercent == 0 {
		return errors.New("plan interest-rate-percent must be positive")
	}
	return nil
}
