package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// Stake enrolls a first-time participant into the plan. The guards run in a
// fixed order and the first failing one is reported; nothing is written
// unless the deposit transfer went through.
func (s *Service) Stake(ctx context.Context, stakerAddress string, amount uint64) *types.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stakeErr := s.stake(ctx, stakerAddress, amount)
	metrics.IncLedgerOperation("stake", stakeErr != nil)
	return stakeErr
}

func (s *Service) stake(ctx context.Context, stakerAddress string, amount uint64) *types.Error {
	paused, err := s.gate.IsPaused(ctx)
	if err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to read pause flag: %w", err))
	}
	if paused {
		return types.NewErrorWithMsg(types.Paused, "staking is paused")
	}

	if amount == 0 {
		return types.NewErrorWithMsg(types.InvalidAmount, "stake amount must be positive")
	}

	now := s.now().Unix()
	if now >= s.plan.EnrollmentDeadline {
		return types.NewErrorWithMsg(types.PlanClosed, "enrollment deadline has passed")
	}

	if _, err := s.db.GetStakeRecord(ctx, stakerAddress); err == nil {
		return types.NewErrorWithMsg(types.AlreadyStaked, "participant has already staked")
	} else if !db.IsNotFoundError(err) {
		return types.NewInternalServiceError(fmt.Errorf("failed to check stake record: %w", err))
	}

	// The deposit moves first so a failed transfer can never leave a
	// dangling record behind.
	if err := s.assetLedger.TransferFrom(ctx, stakerAddress, amount); err != nil {
		var ledgerErr *types.Error
		if errors.As(err, &ledgerErr) {
			return ledgerErr
		}
		return types.NewInternalServiceError(fmt.Errorf("deposit transfer failed: %w", err))
	}

	record := model.NewStakeRecordDocument(
		stakerAddress,
		now,
		now+s.plan.DurationSeconds,
		amount,
	)
	if err := s.db.SaveNewStakeRecord(ctx, record); err != nil {
		// The deposit is already in custody; send it back before reporting
		// the failure.
		if refundErr := s.assetLedger.TransferTo(ctx, stakerAddress, amount); refundErr != nil {
			log.Ctx(ctx).Error().
				Err(refundErr).
				Str("staker_address", stakerAddress).
				Uint64("amount", amount).
				Msg("failed to refund deposit after record insert failure")
		}
		if db.IsDuplicateKeyError(err) {
			return types.NewErrorWithMsg(types.AlreadyStaked, "participant has already staked")
		}
		return types.NewInternalServiceError(fmt.Errorf("failed to save stake record: %w", err))
	}

	// Maturity notification bookkeeping only; the claim path never reads it.
	if err := s.db.SaveNewTimeLock(ctx, stakerAddress, record.MaturityTime); err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("staker_address", stakerAddress).
			Msg("failed to queue maturity notification")
	}

	if count, err := s.db.CountStakeRecords(ctx); err == nil {
		metrics.RecordTotalStakers(count)
	}

	s.emitStakeEvent(ctx, &types.StakeEvent{
		EventType:     types.EventStakeCreatedType,
		StakerAddress: stakerAddress,
		Principal:     amount,
		MaturityTime:  record.MaturityTime,
		Timestamp:     now,
	})

	log.Ctx(ctx).Info().
		Str("staker_address", stakerAddress).
		Uint64("principal", amount).
		Int64("maturity_time", record.MaturityTime).
		Msg("stake created")

	return nil
}
