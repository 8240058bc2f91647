package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/internal/utils/poller"
)

func (s *Service) StartMaturityChecker(ctx context.Context) {
	maturityPoller := poller.NewPoller(
		s.cfg.Poller.MaturityCheckInterval,
		metrics.RecordPollerDuration("maturity_checker", s.checkMaturedStakes),
	)
	go maturityPoller.Start(ctx)
}

// checkMaturedStakes drains the timelock queue of every stake whose maturity
// time has passed and tells the world it is claimable. Claim eligibility is
// recomputed from the record on every claim, so this is notification only.
func (s *Service) checkMaturedStakes(ctx context.Context) error {
	now := s.now().Unix()

	maturedTimeLocks, err := s.db.FindMaturedTimeLocks(ctx, now, s.cfg.Poller.MaturedStakesLimit)
	if err != nil {
		return fmt.Errorf("failed to find matured timelocks: %w", err)
	}

	metrics.RecordMaturedStakesCount(len(maturedTimeLocks))

	for _, tlDoc := range maturedTimeLocks {
		record, err := s.db.GetStakeRecord(ctx, tlDoc.StakerAddress)
		if err != nil {
			return fmt.Errorf("failed to get stake record for matured timelock: %w", err)
		}

		log.Ctx(ctx).Debug().
			Str("staker_address", record.StakerAddress).
			Stringer("state", record.State).
			Int64("maturity_time", tlDoc.MaturityTime).
			Msg("stake matured")

		// Claimed before the poller got to it; nothing to announce.
		if record.State == types.StateClaimed {
			if err := s.db.DeleteTimeLock(ctx, tlDoc.StakerAddress); err != nil {
				return fmt.Errorf("failed to delete stale timelock: %w", err)
			}
			continue
		}

		s.emitStakeEvent(ctx, &types.StakeEvent{
			EventType:     types.EventStakeMaturedType,
			StakerAddress: record.StakerAddress,
			Principal:     record.Principal,
			MaturityTime:  record.MaturityTime,
			Timestamp:     now,
		})

		if err := s.db.DeleteTimeLock(ctx, tlDoc.StakerAddress); err != nil {
			return fmt.Errorf("failed to delete matured timelock: %w", err)
		}
	}

	return nil
}
