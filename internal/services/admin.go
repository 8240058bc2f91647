package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// Pause stops enrollment. Owner-only; claims stay open.
func (s *Service) Pause(ctx context.Context, caller string) *types.Error {
	return s.setPaused(ctx, caller, true)
}

// Unpause reopens enrollment. Owner-only.
func (s *Service) Unpause(ctx context.Context, caller string) *types.Error {
	return s.setPaused(ctx, caller, false)
}

func (s *Service) setPaused(ctx context.Context, caller string, paused bool) *types.Error {
	if !s.gate.IsOwner(caller) {
		return types.NewErrorWithMsg(types.Unauthorized, "caller is not the ledger owner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gate.SetPaused(ctx, paused); err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to set pause flag: %w", err))
	}

	log.Ctx(ctx).Info().Bool("paused", paused).Msg("pause flag updated")
	return nil
}

// TransferCustodialFunds moves funds straight out of the ledger's custody,
// independent of any stake record. Used to fund the reward pool or recover
// surplus. Owner-only, works while paused.
func (s *Service) TransferCustodialFunds(ctx context.Context, caller, to string, amount uint64) *types.Error {
	if !s.gate.IsOwner(caller) {
		return types.NewErrorWithMsg(types.Unauthorized, "caller is not the ledger owner")
	}

	if amount == 0 {
		return types.NewErrorWithMsg(types.InvalidAmount, "transfer amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transferErr := s.transferCustodialFunds(ctx, to, amount)
	metrics.IncLedgerOperation("custodial_transfer", transferErr != nil)
	return transferErr
}

func (s *Service) transferCustodialFunds(ctx context.Context, to string, amount uint64) *types.Error {
	balance, err := s.assetLedger.BalanceOf(ctx, s.cfg.AssetLedger.CustodyAddress)
	if err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to read custody balance: %w", err))
	}
	if balance < amount {
		return types.NewErrorWithMsg(types.InsufficientFunds, "custody balance cannot satisfy transfer")
	}

	if err := s.assetLedger.TransferTo(ctx, to, amount); err != nil {
		var ledgerErr *types.Error
		if errors.As(err, &ledgerErr) {
			return ledgerErr
		}
		return types.NewInternalServiceError(fmt.Errorf("custodial transfer failed: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("to_address", to).
		Uint64("amount", amount).
		Msg("custodial funds transferred")

	return nil
}
