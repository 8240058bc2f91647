package assetledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/clients/client"
	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

const (
	transferFromEndpoint = "/v1/transfer-from"
	transferEndpoint     = "/v1/transfer"
	balanceEndpoint      = "/v1/balance"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.AssetLedgerConfig
}

var _ AssetLedgerInterface = (*Client)(nil)

func NewClient(cfg *config.AssetLedgerConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.cfg.BaseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

type transferRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type transferResponse struct {
	TxID string `json:"tx_id"`
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

func (c *Client) TransferFrom(ctx context.Context, spender string, amount uint64) error {
	payload := &transferRequest{
		From:   spender,
		To:     c.cfg.CustodyAddress,
		Amount: amount,
	}

	// Transfers are never retried: a lost response could mean the transfer
	// went through, and a second attempt would move funds twice.
	opts := &client.HttpClientOptions{
		Path:         transferFromEndpoint,
		TemplatePath: transferFromEndpoint,
	}
	if _, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, payload); err != nil {
		return mapTransferError(err, spender)
	}
	return nil
}

func (c *Client) TransferTo(ctx context.Context, to string, amount uint64) error {
	payload := &transferRequest{
		From:   c.cfg.CustodyAddress,
		To:     to,
		Amount: amount,
	}

	opts := &client.HttpClientOptions{
		Path:         transferEndpoint,
		TemplatePath: transferEndpoint,
	}
	if _, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, payload); err != nil {
		return mapTransferError(err, c.cfg.CustodyAddress)
	}
	return nil
}

func (c *Client) BalanceOf(ctx context.Context, address string) (uint64, error) {
	call := func() (*balanceResponse, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf("%s/%s", balanceEndpoint, address),
			TemplatePath: balanceEndpoint,
		}
		return client.SendRequest[any, balanceResponse](ctx, c, http.MethodGet, opts, nil)
	}

	resp, err := clientCallWithRetry(ctx, call, c.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", address, err)
	}
	return resp.Balance, nil
}

// mapTransferError converts the asset ledger's rejection statuses into the
// ledger taxonomy. 402 is the ledger's insufficient balance signal.
func mapTransferError(err error, account string) error {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusPaymentRequired {
		return types.NewErrorWithMsg(
			types.InsufficientFunds,
			fmt.Sprintf("insufficient balance on account %s", account),
		)
	}
	return err
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[*T],
	cfg *config.AssetLedgerConfig,
) (*T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// Business rejections are final; only transport failures and
			// server errors are worth another attempt.
			var reqErr *client.RequestError
			if errors.As(err, &reqErr) {
				return reqErr.StatusCode >= http.StatusInternalServerError
			}
			return err != nil
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("retrying asset ledger call with exponential backoff")
		}))
	if err != nil {
		return nil, err
	}
	return result, nil
}
