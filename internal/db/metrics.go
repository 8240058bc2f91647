package db

import (
	"context"
	"time"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

var _ DbInterface = (*DbWithMetrics)(nil)

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewStakeRecord(ctx context.Context, record *model.StakeRecordDocument) error {
	return d.run("SaveNewStakeRecord", func() error {
		return d.db.SaveNewStakeRecord(ctx, record)
	})
}

func (d *DbWithMetrics) GetStakeRecord(ctx context.Context, stakerAddress string) (result *model.StakeRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeRecord", func() error {
		result, err = d.db.GetStakeRecord(ctx, stakerAddress)
		return err
	})
	return
}

func (d *DbWithMetrics) MarkStakeClaimed(
	ctx context.Context,
	stakerAddress string,
	qualifiedPreviousStates []types.StakeState,
	reward uint64,
	claimedAt int64,
) error {
	return d.run("MarkStakeClaimed", func() error {
		return d.db.MarkStakeClaimed(ctx, stakerAddress, qualifiedPreviousStates, reward, claimedAt)
	})
}

func (d *DbWithMetrics) RevertStakeClaimed(ctx context.Context, stakerAddress string) error {
	return d.run("RevertStakeClaimed", func() error {
		return d.db.RevertStakeClaimed(ctx, stakerAddress)
	})
}

func (d *DbWithMetrics) CountStakeRecords(ctx context.Context) (result uint64, err error) {
	//nolint:errcheck
	d.run("CountStakeRecords", func() error {
		result, err = d.db.CountStakeRecords(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllStakeRecords(ctx context.Context) (result []model.StakeRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetAllStakeRecords", func() error {
		result, err = d.db.GetAllStakeRecords(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SavePlanParams(ctx context.Context, params *model.PlanParamsDocument) error {
	return d.run("SavePlanParams", func() error {
		return d.db.SavePlanParams(ctx, params)
	})
}

func (d *DbWithMetrics) GetPlanParams(ctx context.Context) (result *model.PlanParamsDocument, err error) {
	//nolint:errcheck
	d.run("GetPlanParams", func() error {
		result, err = d.db.GetPlanParams(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetPausedFlag(ctx context.Context) (result bool, err error) {
	//nolint:errcheck
	d.run("GetPausedFlag", func() error {
		result, err = d.db.GetPausedFlag(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SetPausedFlag(ctx context.Context, paused bool) error {
	return d.run("SetPausedFlag", func() error {
		return d.db.SetPausedFlag(ctx, paused)
	})
}

func (d *DbWithMetrics) SaveNewTimeLock(ctx context.Context, stakerAddress string, maturityTime int64) error {
	return d.run("SaveNewTimeLock", func() error {
		return d.db.SaveNewTimeLock(ctx, stakerAddress, maturityTime)
	})
}

func (d *DbWithMetrics) FindMaturedTimeLocks(ctx context.Context, now int64, limit uint64) (result []model.TimeLockDocument, err error) {
	//nolint:errcheck
	d.run("FindMaturedTimeLocks", func() error {
		result, err = d.db.FindMaturedTimeLocks(ctx, now, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) DeleteTimeLock(ctx context.Context, stakerAddress string) error {
	return d.run("DeleteTimeLock", func() error {
		return d.db.DeleteTimeLock(ctx, stakerAddress)
	})
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordDbLatency(time.Since(start), method, err != nil)
	return err
}
