package config

import (
	"fmt"

	"github.com/stakelock-io/staking-ledger/pkg"
)

// AccessConfig identifies the single privileged administrative principal.
type AccessConfig struct {
	OwnerAddress string `mapstructure:"owner-address"`
}

func (cfg *AccessConfig) Validate() error {
	if cfg.OwnerAddress == "" {
		return fmt.Errorf("owner address is required")
	}
	if err := pkg.ValidateStakerAddress(cfg.OwnerAddress); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	return nil
}
