package assetledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/testutil"
)

func TestMain(m *testing.M) {
	// port 0 binds an ephemeral port for the metrics listener
	metrics.Init(0)
	os.Exit(m.Run())
}

func newClientFor(t *testing.T, handler http.Handler, custody string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.AssetLedgerConfig{
		BaseURL:        server.URL,
		CustodyAddress: custody,
		Timeout:        time.Second,
		MaxRetryTimes:  3,
		RetryInterval:  time.Millisecond,
	})
}

func TestTransferFrom(t *testing.T) {
	ctx := t.Context()
	custody := testutil.RandomStakerAddress()
	spender := testutil.RandomStakerAddress()

	t.Run("ok", func(t *testing.T) {
		var got transferRequest
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, transferFromEndpoint, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(transferResponse{TxID: "tx-1"})
		}), custody)

		require.NoError(t, c.TransferFrom(ctx, spender, 1_000))
		assert.Equal(t, spender, got.From)
		assert.Equal(t, custody, got.To)
		assert.Equal(t, uint64(1_000), got.Amount)
	})

	t.Run("insufficient balance maps to taxonomy", func(t *testing.T) {
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "balance too low", http.StatusPaymentRequired)
		}), custody)

		err := c.TransferFrom(ctx, spender, 1_000)
		require.Error(t, err)
		assert.Equal(t, types.InsufficientFunds, types.ErrorCodeOf(err))
	})

	t.Run("server error is never retried", func(t *testing.T) {
		var calls atomic.Int64
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}), custody)

		err := c.TransferFrom(ctx, spender, 1_000)
		require.Error(t, err)
		assert.Equal(t, int64(1), calls.Load())
	})
}

func TestTransferTo(t *testing.T) {
	ctx := t.Context()
	custody := testutil.RandomStakerAddress()
	recipient := testutil.RandomStakerAddress()

	t.Run("ok", func(t *testing.T) {
		var got transferRequest
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, transferEndpoint, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(transferResponse{TxID: "tx-2"})
		}), custody)

		require.NoError(t, c.TransferTo(ctx, recipient, 1_320))
		assert.Equal(t, custody, got.From)
		assert.Equal(t, recipient, got.To)
		assert.Equal(t, uint64(1_320), got.Amount)
	})

	t.Run("empty custody maps to taxonomy", func(t *testing.T) {
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "balance too low", http.StatusPaymentRequired)
		}), custody)

		err := c.TransferTo(ctx, recipient, 1_320)
		require.Error(t, err)
		assert.Equal(t, types.InsufficientFunds, types.ErrorCodeOf(err))
	})
}

func TestBalanceOf(t *testing.T) {
	ctx := t.Context()
	custody := testutil.RandomStakerAddress()
	account := testutil.RandomStakerAddress()

	t.Run("ok", func(t *testing.T) {
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, balanceEndpoint+"/"+account, r.URL.Path)
			_ = json.NewEncoder(w).Encode(balanceResponse{Address: account, Balance: 4_200})
		}), custody)

		balance, err := c.BalanceOf(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, uint64(4_200), balance)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int64
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(balanceResponse{Address: account, Balance: 7})
		}), custody)

		balance, err := c.BalanceOf(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), balance)
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("client errors are final", func(t *testing.T) {
		var calls atomic.Int64
		c := newClientFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "no such account", http.StatusNotFound)
		}), custody)

		_, err := c.BalanceOf(ctx, account)
		require.Error(t, err)
		assert.Equal(t, int64(1), calls.Load())
	})
}
