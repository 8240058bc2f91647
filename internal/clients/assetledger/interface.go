package assetledger

import (
	"context"
)

// AssetLedgerInterface is the boundary to the external fungible-asset
// ledger. Balance storage and transfer semantics live entirely on the other
// side; the staking ledger only consumes success/failure signaling.
type AssetLedgerInterface interface {
	// TransferFrom pulls amount from the spender's balance into the staking
	// ledger's custody account. The spender must have granted the custody
	// account an allowance beforehand.
	TransferFrom(ctx context.Context, spender string, amount uint64) error
	// TransferTo moves amount out of the custody account to the given
	// address.
	TransferTo(ctx context.Context, to string, amount uint64) error
	BalanceOf(ctx context.Context, address string) (uint64, error)
}
