package assetledger

import (
	"context"
	"time"

	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
)

type AssetLedgerWithMetrics struct {
	client AssetLedgerInterface
}

func NewAssetLedgerWithMetrics(client AssetLedgerInterface) *AssetLedgerWithMetrics {
	return &AssetLedgerWithMetrics{client: client}
}

var _ AssetLedgerInterface = (*AssetLedgerWithMetrics)(nil)

func (a *AssetLedgerWithMetrics) TransferFrom(ctx context.Context, spender string, amount uint64) error {
	return a.run("TransferFrom", func() error {
		return a.client.TransferFrom(ctx, spender, amount)
	})
}

func (a *AssetLedgerWithMetrics) TransferTo(ctx context.Context, to string, amount uint64) error {
	return a.run("TransferTo", func() error {
		return a.client.TransferTo(ctx, to, amount)
	})
}

func (a *AssetLedgerWithMetrics) BalanceOf(ctx context.Context, address string) (result uint64, err error) {
	//nolint:errcheck
	a.run("BalanceOf", func() error {
		result, err = a.client.BalanceOf(ctx, address)
		return err
	})
	return
}

func (a *AssetLedgerWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordAssetLedgerClientLatency(time.Since(start), method, err != nil)
	return err
}
