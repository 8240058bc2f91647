//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
)

func TestPlanParams(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found before creation", func(t *testing.T) {
		_, err := testDB.GetPlanParams(ctx)
		assert.True(t, db.IsNotFoundError(err))
	})

	t.Run("save once and load", func(t *testing.T) {
		params := &model.PlanParamsDocument{
			DurationSeconds:     2_592_000,
			InterestRatePercent: 32,
			CreatedAt:           1_748_736_000,
			EnrollmentDeadline:  1_748_736_000 + 2_592_000,
		}
		require.NoError(t, testDB.SavePlanParams(ctx, params))

		actual, err := testDB.GetPlanParams(ctx)
		require.NoError(t, err)
		assert.Equal(t, params, actual)

		// the plan is immutable, a second insert is a duplicate
		other := &model.PlanParamsDocument{
			DurationSeconds:     86_400,
			InterestRatePercent: 5,
		}
		err = testDB.SavePlanParams(ctx, other)
		assert.True(t, db.IsDuplicateKeyError(err))

		actual, err = testDB.GetPlanParams(ctx)
		require.NoError(t, err)
		assert.Equal(t, params, actual)
	})
}
