package db

import (
	"context"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	// SaveNewStakeRecord inserts the one-and-only record for a participant.
	// Returns a DuplicateKeyError if the participant has staked before.
	SaveNewStakeRecord(ctx context.Context, record *model.StakeRecordDocument) error
	// GetStakeRecord returns a NotFoundError for unknown participants.
	GetStakeRecord(ctx context.Context, stakerAddress string) (*model.StakeRecordDocument, error)
	// MarkStakeClaimed flips a record into CLAIMED, provided its current
	// state is one of qualifiedPreviousStates. Returns a NotFoundError when
	// no record matches, which covers both unknown participants and records
	// already claimed.
	MarkStakeClaimed(
		ctx context.Context,
		stakerAddress string,
		qualifiedPreviousStates []types.StakeState,
		reward uint64,
		claimedAt int64,
	) error
	// RevertStakeClaimed undoes MarkStakeClaimed after a failed payout so
	// the participant can claim again.
	RevertStakeClaimed(ctx context.Context, stakerAddress string) error
	CountStakeRecords(ctx context.Context) (uint64, error)
	GetAllStakeRecords(ctx context.Context) ([]model.StakeRecordDocument, error)

	SavePlanParams(ctx context.Context, params *model.PlanParamsDocument) error
	GetPlanParams(ctx context.Context) (*model.PlanParamsDocument, error)

	GetPausedFlag(ctx context.Context) (bool, error)
	SetPausedFlag(ctx context.Context, paused bool) error

	SaveNewTimeLock(ctx context.Context, stakerAddress string, maturityTime int64) error
	FindMaturedTimeLocks(ctx context.Context, now int64, limit uint64) ([]model.TimeLockDocument, error)
	DeleteTimeLock(ctx context.Context, stakerAddress string) error
}
