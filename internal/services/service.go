package services

import (
	"context"
	"sync"
	"time"

	"github.com/stakelock-io/staking-ledger/internal/access"
	"github.com/stakelock-io/staking-ledger/internal/clients/assetledger"
	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// EventPusher is the outbound queue boundary. Event delivery is best-effort
// and never fails a ledger operation.
type EventPusher interface {
	PushStakeEvent(ctx context.Context, event *types.StakeEvent) error
}

// Service is the staking ledger core. All mutating operations run under mu
// so the check-then-act guard chains behave as if single-threaded; reads go
// straight to the store.
type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	assetLedger  assetledger.AssetLedgerInterface
	gate         access.Gate
	queueManager EventPusher

	// plan is loaded once by SyncPlanParams and immutable afterwards.
	plan *model.PlanParamsDocument

	mu  sync.Mutex
	now func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	assetLedger assetledger.AssetLedgerInterface,
	gate access.Gate,
	qm EventPusher,
) *Service {
	return &Service{
		cfg:          cfg,
		db:           db,
		assetLedger:  assetLedger,
		gate:         gate,
		queueManager: qm,
		now:          time.Now,
	}
}

// StartLedger brings the service into its serving state: the plan is created
// or loaded, and the maturity checker starts polling.
func (s *Service) StartLedger(ctx context.Context) error {
	if err := s.SyncPlanParams(ctx); err != nil {
		return err
	}
	s.StartMaturityChecker(ctx)
	return nil
}
