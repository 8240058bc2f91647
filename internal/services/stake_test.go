package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/testutil"
)

func TestStake(t *testing.T) {
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 5_000)

		err := tl.service.Stake(ctx, staker, 1_000)
		require.Nil(t, err)

		record, infoErr := tl.service.StakeInfoOf(ctx, staker)
		require.Nil(t, infoErr)
		assert.Equal(t, staker, record.StakerAddress)
		assert.Equal(t, uint64(1_000), record.Principal)
		assert.Equal(t, types.StateActive, record.State)
		assert.Equal(t, testPlanStart.Unix(), record.StartTime)
		assert.Equal(t, testPlanStart.Add(testPlanDuration).Unix(), record.MaturityTime)

		// principal moved into custody
		assert.Equal(t, uint64(4_000), tl.ledger.balanceOf(staker))
		assert.Equal(t, uint64(testCustodyInitFunds+1_000), tl.ledger.balanceOf(tl.custodyAddress))

		created := tl.queue.eventsOfType(types.EventStakeCreatedType)
		require.Len(t, created, 1)
		assert.Equal(t, staker, created[0].StakerAddress)
		assert.Equal(t, uint64(1_000), created[0].Principal)
	})

	t.Run("zero amount", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()

		err := tl.service.Stake(ctx, staker, 0)
		require.NotNil(t, err)
		assert.Equal(t, types.InvalidAmount, err.Code)

		staked, hasErr := tl.service.HasStaked(ctx, staker)
		require.Nil(t, hasErr)
		assert.False(t, staked)
	})

	t.Run("paused", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 5_000)

		require.Nil(t, tl.service.Pause(ctx, tl.ownerAddress))

		err := tl.service.Stake(ctx, staker, 1_000)
		require.NotNil(t, err)
		assert.Equal(t, types.Paused, err.Code)

		// pause is checked before the amount guard
		err = tl.service.Stake(ctx, staker, 0)
		require.NotNil(t, err)
		assert.Equal(t, types.Paused, err.Code)

		require.Nil(t, tl.service.Unpause(ctx, tl.ownerAddress))
		require.Nil(t, tl.service.Stake(ctx, staker, 1_000))
	})

	t.Run("after enrollment deadline", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 5_000)

		tl.advanceTo(testPlanStart.Add(testPlanDuration))

		err := tl.service.Stake(ctx, staker, 1_000)
		require.NotNil(t, err)
		assert.Equal(t, types.PlanClosed, err.Code)
	})

	t.Run("second stake rejected", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 5_000)

		require.Nil(t, tl.service.Stake(ctx, staker, 1_000))

		err := tl.service.Stake(ctx, staker, 500)
		require.NotNil(t, err)
		assert.Equal(t, types.AlreadyStaked, err.Code)

		// the rejected deposit never moved
		assert.Equal(t, uint64(4_000), tl.ledger.balanceOf(staker))

		total, totalErr := tl.service.TotalStakers(ctx)
		require.Nil(t, totalErr)
		assert.Equal(t, uint64(1), total)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 100)

		err := tl.service.Stake(ctx, staker, 1_000)
		require.NotNil(t, err)
		assert.Equal(t, types.InsufficientFunds, err.Code)

		staked, hasErr := tl.service.HasStaked(ctx, staker)
		require.Nil(t, hasErr)
		assert.False(t, staked)
	})

	t.Run("record insert failure refunds deposit", func(t *testing.T) {
		tl := newTestLedger(t)
		staker := testutil.RandomStakerAddress()
		tl.ledger.setBalance(staker, 5_000)
		tl.db.saveStakeErr = errors.New("write failed")

		err := tl.service.Stake(ctx, staker, 1_000)
		require.NotNil(t, err)
		assert.Equal(t, types.InternalServiceError, err.Code)

		assert.Equal(t, uint64(5_000), tl.ledger.balanceOf(staker))
		assert.Equal(t, uint64(testCustodyInitFunds), tl.ledger.balanceOf(tl.custodyAddress))
	})

	t.Run("distinct participants each get one record", func(t *testing.T) {
		tl := newTestLedger(t)
		for range 3 {
			staker := testutil.RandomStakerAddress()
			tl.ledger.setBalance(staker, 5_000)
			require.Nil(t, tl.service.Stake(ctx, staker, 1_000))
		}

		total, err := tl.service.TotalStakers(ctx)
		require.Nil(t, err)
		assert.Equal(t, uint64(3), total)
	})
}

func TestGetTokenExpiry(t *testing.T) {
	ctx := t.Context()
	tl := newTestLedger(t)
	staker := testutil.RandomStakerAddress()
	tl.ledger.setBalance(staker, 5_000)

	_, err := tl.service.GetTokenExpiry(ctx, staker)
	require.NotNil(t, err)
	assert.Equal(t, types.NotParticipant, err.Code)

	require.Nil(t, tl.service.Stake(ctx, staker, 1_000))

	expiry, err := tl.service.GetTokenExpiry(ctx, staker)
	require.Nil(t, err)
	assert.Equal(t, testPlanStart.Add(testPlanDuration).Unix(), expiry)
}

func TestStakeJustBeforeDeadline(t *testing.T) {
	ctx := t.Context()
	tl := newTestLedger(t)
	staker := testutil.RandomStakerAddress()
	tl.ledger.setBalance(staker, 5_000)

	tl.advanceTo(testPlanStart.Add(testPlanDuration - time.Second))
	require.Nil(t, tl.service.Stake(ctx, staker, 1_000))

	record, err := tl.service.StakeInfoOf(ctx, staker)
	require.Nil(t, err)
	// the lock-up runs the full duration from the stake, past the deadline
	assert.Equal(t, testPlanStart.Add(2*testPlanDuration-time.Second).Unix(), record.MaturityTime)
}
