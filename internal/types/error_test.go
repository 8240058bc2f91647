package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakelock-io/staking-ledger/internal/types"
)

func TestError(t *testing.T) {
	t.Run("message includes the code", func(t *testing.T) {
		err := types.NewErrorWithMsg(types.NotMatured, "stake has not matured yet")
		assert.Equal(t, "NOT_MATURED: stake has not matured yet", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := types.NewInternalServiceError(cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil cause", func(t *testing.T) {
		err := types.NewError(types.Paused, nil)
		assert.Equal(t, "PAUSED", err.Error())
	})
}

func TestErrorCodeOf(t *testing.T) {
	t.Run("ledger error", func(t *testing.T) {
		err := types.NewErrorWithMsg(types.AlreadyStaked, "again")
		assert.Equal(t, types.AlreadyStaked, types.ErrorCodeOf(err))
	})

	t.Run("wrapped ledger error", func(t *testing.T) {
		err := fmt.Errorf("request failed: %w", types.NewErrorWithMsg(types.InsufficientFunds, "too low"))
		assert.Equal(t, types.InsufficientFunds, types.ErrorCodeOf(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, types.InternalServiceError, types.ErrorCodeOf(errors.New("boom")))
	})
}
