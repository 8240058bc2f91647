package config

import (
	"fmt"
	"time"

	"github.com/stakelock-io/staking-ledger/pkg"
)

// AssetLedgerConfig points at the external fungible-asset ledger holding all
// balances. CustodyAddress is the account the staking ledger owns there;
// staked principal and the reward pool live on that account.
type AssetLedgerConfig struct {
	BaseURL        string        `mapstructure:"base-url"`
	CustodyAddress string        `mapstructure:"custody-address"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetryTimes  uint          `mapstructure:"max-retry-times"`
	RetryInterval  time.Duration `mapstructure:"retry-interval"`
}

func (cfg *AssetLedgerConfig) Validate() error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("asset ledger base-url is required")
	}
	if cfg.CustodyAddress == "" {
		return fmt.Errorf("asset ledger custody-address is required")
	}
	if err := pkg.ValidateStakerAddress(cfg.CustodyAddress); err != nil {
		return fmt.Errorf("invalid custody address: %w", err)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("asset ledger timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("asset ledger max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("asset ledger retry-interval must be positive")
	}
	return nil
}
