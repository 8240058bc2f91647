package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// emitStakeEvent publishes a ledger transition. Delivery is best-effort: a
// queue outage is counted and logged, never propagated to the caller whose
// funds already moved.
func (s *Service) emitStakeEvent(ctx context.Context, event *types.StakeEvent) {
	if s.queueManager == nil {
		return
	}

	if err := s.queueManager.PushStakeEvent(ctx, event); err != nil {
		metrics.RecordQueueSendError()
		log.Ctx(ctx).Error().
			Err(err).
			Stringer("event_type", event.EventType).
			Str("staker_address", event.StakerAddress).
			Msg("failed to push stake event")
	}
}
