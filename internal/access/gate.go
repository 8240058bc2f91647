package access

import (
	"context"
	"crypto/subtle"

	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db"
)

// Gate answers the two administrative questions the ledger asks before any
// owner-only or pause-gated operation: who is the owner, and is staking
// paused.
type Gate interface {
	IsOwner(caller string) bool
	IsPaused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
}

// StaticOwnerGate fixes the owner principal at startup from config and keeps
// the pause flag in the database so it survives restarts.
type StaticOwnerGate struct {
	ownerAddress string
	db           db.DbInterface
}

var _ Gate = (*StaticOwnerGate)(nil)

func NewStaticOwnerGate(cfg *config.AccessConfig, db db.DbInterface) *StaticOwnerGate {
	return &StaticOwnerGate{
		ownerAddress: cfg.OwnerAddress,
		db:           db,
	}
}

func (g *StaticOwnerGate) IsOwner(caller string) bool {
	return subtle.ConstantTimeCompare([]byte(g.ownerAddress), []byte(caller)) == 1
}

func (g *StaticOwnerGate) IsPaused(ctx context.Context) (bool, error) {
	return g.db.GetPausedFlag(ctx)
}

func (g *StaticOwnerGate) SetPaused(ctx context.Context, paused bool) error {
	return g.db.SetPausedFlag(ctx, paused)
}
