package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
)

// SyncPlanParams creates the plan on the very first start and loads it on
// every start after that. The stored copy is authoritative: the enrollment
// deadline was fixed when the plan was created and config changes never
// reach an existing plan.
func (s *Service) SyncPlanParams(ctx context.Context) error {
	params, err := s.db.GetPlanParams(ctx)
	if err == nil {
		s.warnOnConfigDrift(ctx, params)
		s.plan = params
		return nil
	}
	if !db.IsNotFoundError(err) {
		return fmt.Errorf("failed to load plan parameters: %w", err)
	}

	createdAt := s.now().Unix()
	durationSeconds := int64(s.cfg.Plan.Duration.Seconds())
	params = &model.PlanParamsDocument{
		DurationSeconds:     durationSeconds,
		InterestRatePercent: s.cfg.Plan.InterestRatePercent,
		CreatedAt:           createdAt,
		EnrollmentDeadline:  createdAt + durationSeconds,
	}

	if err := s.db.SavePlanParams(ctx, params); err != nil {
		if db.IsDuplicateKeyError(err) {
			// another instance won the race, its copy is the plan
			params, err = s.db.GetPlanParams(ctx)
			if err != nil {
				return fmt.Errorf("failed to reload plan parameters: %w", err)
			}
			s.plan = params
			return nil
		}
		return fmt.Errorf("failed to save plan parameters: %w", err)
	}

	log.Ctx(ctx).Info().
		Int64("duration_seconds", params.DurationSeconds).
		Uint64("interest_rate_percent", params.InterestRatePercent).
		Int64("enrollment_deadline", params.EnrollmentDeadline).
		Msg("created staking plan")

	s.plan = params
	return nil
}

func (s *Service) warnOnConfigDrift(ctx context.Context, stored *model.PlanParamsDocument) {
	configured := int64(s.cfg.Plan.Duration.Seconds())
	if stored.DurationSeconds != configured ||
		stored.InterestRatePercent != s.cfg.Plan.InterestRatePercent {
		log.Ctx(ctx).Warn().
			Int64("stored_duration_seconds", stored.DurationSeconds).
			Int64("configured_duration_seconds", configured).
			Uint64("stored_interest_rate_percent", stored.InterestRatePercent).
			Uint64("configured_interest_rate_percent", s.cfg.Plan.InterestRatePercent).
			Msg("plan config differs from stored plan, stored plan stays authoritative")
	}
}
