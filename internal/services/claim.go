package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// ClaimReward pays out principal plus the fixed-percentage reward, exactly
// once per participant, at or after maturity. The claim is deliberately not
// gated by the pause flag: pausing stops enrollment, it never locks anyone
// out of funds that already matured.
func (s *Service) ClaimReward(ctx context.Context, stakerAddress string) *types.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claimErr := s.claimReward(ctx, stakerAddress)
	metrics.IncLedgerOperation("claim", claimErr != nil)
	return claimErr
}

func (s *Service) claimReward(ctx context.Context, stakerAddress string) *types.Error {
	record, err := s.db.GetStakeRecord(ctx, stakerAddress)
	if err != nil {
		if db.IsNotFoundError(err) {
			return types.NewErrorWithMsg(types.NotParticipant, "no stake record for participant")
		}
		return types.NewInternalServiceError(fmt.Errorf("failed to load stake record: %w", err))
	}

	now := s.now().Unix()
	if now < record.MaturityTime {
		return types.NewErrorWithMsg(types.NotMatured, "stake has not matured yet")
	}

	if record.State != types.StateActive {
		return types.NewErrorWithMsg(types.AlreadyClaimed, "reward has already been claimed")
	}

	reward := RewardFor(record.Principal, s.plan.InterestRatePercent)

	// Flip the record first; the qualified-state filter makes the flip
	// atomic so a concurrent claim can never pay out twice.
	err = s.db.MarkStakeClaimed(ctx, stakerAddress, types.QualifiedStatesForClaim(), reward, now)
	if err != nil {
		if db.IsNotFoundError(err) {
			return types.NewErrorWithMsg(types.AlreadyClaimed, "reward has already been claimed")
		}
		return types.NewInternalServiceError(fmt.Errorf("failed to mark stake claimed: %w", err))
	}

	payout := record.Principal + reward
	if err := s.assetLedger.TransferTo(ctx, stakerAddress, payout); err != nil {
		// Undo the flip so the participant can claim again once the payout
		// can be satisfied.
		if revertErr := s.db.RevertStakeClaimed(ctx, stakerAddress); revertErr != nil {
			log.Ctx(ctx).Error().
				Err(revertErr).
				Str("staker_address", stakerAddress).
				Msg("failed to revert claim after payout failure")
		}
		var ledgerErr *types.Error
		if errors.As(err, &ledgerErr) {
			return ledgerErr
		}
		return types.NewInternalServiceError(fmt.Errorf("payout transfer failed: %w", err))
	}

	s.emitStakeEvent(ctx, &types.StakeEvent{
		EventType:     types.EventRewardClaimedType,
		StakerAddress: stakerAddress,
		Principal:     record.Principal,
		Reward:        reward,
		MaturityTime:  record.MaturityTime,
		Timestamp:     now,
	})

	log.Ctx(ctx).Info().
		Str("staker_address", stakerAddress).
		Uint64("principal", record.Principal).
		Uint64("reward", reward).
		Msg("reward claimed")

	return nil
}

// RewardFor applies the integer plan percentage to the principal, truncating
// toward zero. No compounding, no proration.
func RewardFor(principal, interestRatePercent uint64) uint64 {
	return principal * interestRatePercent / 100
}
