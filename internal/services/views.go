package services

import (
	"context"
	"fmt"

	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// StakeInfoOf returns the participant's full record, or NOT_PARTICIPANT if
// they never staked.
func (s *Service) StakeInfoOf(ctx context.Context, stakerAddress string) (*model.StakeRecordDocument, *types.Error) {
	record, err := s.db.GetStakeRecord(ctx, stakerAddress)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewErrorWithMsg(types.NotParticipant, "no stake record for participant")
		}
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to load stake record: %w", err))
	}
	return record, nil
}

// GetTokenExpiry returns the participant's maturity time.
func (s *Service) GetTokenExpiry(ctx context.Context, stakerAddress string) (int64, *types.Error) {
	record, err := s.StakeInfoOf(ctx, stakerAddress)
	if err != nil {
		return 0, err
	}
	return record.MaturityTime, nil
}

func (s *Service) HasStaked(ctx context.Context, stakerAddress string) (bool, *types.Error) {
	_, err := s.db.GetStakeRecord(ctx, stakerAddress)
	if err == nil {
		return true, nil
	}
	if db.IsNotFoundError(err) {
		return false, nil
	}
	return false, types.NewInternalServiceError(fmt.Errorf("failed to check stake record: %w", err))
}

func (s *Service) TotalStakers(ctx context.Context) (uint64, *types.Error) {
	count, err := s.db.CountStakeRecords(ctx)
	if err != nil {
		return 0, types.NewInternalServiceError(fmt.Errorf("failed to count stake records: %w", err))
	}
	return count, nil
}

func (s *Service) IsPaused(ctx context.Context) (bool, *types.Error) {
	paused, err := s.gate.IsPaused(ctx)
	if err != nil {
		return false, types.NewInternalServiceError(fmt.Errorf("failed to read pause flag: %w", err))
	}
	return paused, nil
}

// Plan parameter accessors. The plan is immutable once SyncPlanParams has
// run, so these never touch the store.

func (s *Service) PlanDuration() int64 {
	return s.plan.DurationSeconds
}

func (s *Service) InterestRatePercent() uint64 {
	return s.plan.InterestRatePercent
}

func (s *Service) EnrollmentDeadline() int64 {
	return s.plan.EnrollmentDeadline
}
