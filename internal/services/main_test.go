package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stakelock-io/staking-ledger/internal/access"
	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/testutil"
)

func TestMain(m *testing.M) {
	// port 0 binds an ephemeral port for the metrics listener
	metrics.Init(0)
	os.Exit(m.Run())
}

// fakeDb is an in-memory DbInterface with the same error semantics as the
// mongo-backed store.
type fakeDb struct {
	mu        sync.Mutex
	stakes    map[string]*model.StakeRecordDocument
	plan      *model.PlanParamsDocument
	paused    bool
	timelocks map[string]int64

	saveStakeErr error
}

var _ db.DbInterface = (*fakeDb)(nil)

func newFakeDb() *fakeDb {
	return &fakeDb{
		stakes:    make(map[string]*model.StakeRecordDocument),
		timelocks: make(map[string]int64),
	}
}

func (f *fakeDb) Ping(ctx context.Context) error { return nil }

func (f *fakeDb) SaveNewStakeRecord(ctx context.Context, record *model.StakeRecordDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveStakeErr != nil {
		return f.saveStakeErr
	}
	if _, ok := f.stakes[record.StakerAddress]; ok {
		return &db.DuplicateKeyError{Key: record.StakerAddress, Message: "stake record already exists"}
	}
	clone := *record
	f.stakes[record.StakerAddress] = &clone
	return nil
}

func (f *fakeDb) GetStakeRecord(ctx context.Context, stakerAddress string) (*model.StakeRecordDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.stakes[stakerAddress]
	if !ok {
		return nil, &db.NotFoundError{Key: stakerAddress, Message: "stake record not found"}
	}
	clone := *record
	return &clone, nil
}

func (f *fakeDb) MarkStakeClaimed(
	ctx context.Context,
	stakerAddress string,
	qualifiedPreviousStates []types.StakeState,
	reward uint64,
	claimedAt int64,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.stakes[stakerAddress]
	if !ok {
		return &db.NotFoundError{Key: stakerAddress, Message: "stake record not found"}
	}
	qualified := false
	for _, state := range qualifiedPreviousStates {
		if record.State == state {
			qualified = true
			break
		}
	}
	if !qualified {
		return &db.NotFoundError{Key: stakerAddress, Message: "state is not qualified for claim"}
	}
	record.State = types.StateClaimed
	record.Reward = reward
	record.ClaimedAt = claimedAt
	return nil
}

func (f *fakeDb) RevertStakeClaimed(ctx context.Context, stakerAddress string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.stakes[stakerAddress]
	if !ok || record.State != types.StateClaimed {
		return &db.NotFoundError{Key: stakerAddress, Message: "claimed stake record not found"}
	}
	record.State = types.StateActive
	record.Reward = 0
	record.ClaimedAt = 0
	return nil
}

func (f *fakeDb) CountStakeRecords(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.stakes)), nil
}

func (f *fakeDb) GetAllStakeRecords(ctx context.Context) ([]model.StakeRecordDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]model.StakeRecordDocument, 0, len(f.stakes))
	for _, record := range f.stakes {
		records = append(records, *record)
	}
	return records, nil
}

func (f *fakeDb) SavePlanParams(ctx context.Context, params *model.PlanParamsDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plan != nil {
		return &db.DuplicateKeyError{Key: "PLAN", Message: "plan params already exist"}
	}
	clone := *params
	f.plan = &clone
	return nil
}

func (f *fakeDb) GetPlanParams(ctx context.Context) (*model.PlanParamsDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plan == nil {
		return nil, &db.NotFoundError{Key: "PLAN", Message: "plan params not found"}
	}
	clone := *f.plan
	return &clone, nil
}

func (f *fakeDb) GetPausedFlag(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, nil
}

func (f *fakeDb) SetPausedFlag(ctx context.Context, paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = paused
	return nil
}

func (f *fakeDb) SaveNewTimeLock(ctx context.Context, stakerAddress string, maturityTime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.timelocks[stakerAddress]; ok {
		return &db.DuplicateKeyError{Key: stakerAddress, Message: "timelock already exists"}
	}
	f.timelocks[stakerAddress] = maturityTime
	return nil
}

func (f *fakeDb) FindMaturedTimeLocks(ctx context.Context, now int64, limit uint64) ([]model.TimeLockDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matured []model.TimeLockDocument
	for addr, maturityTime := range f.timelocks {
		if maturityTime <= now && uint64(len(matured)) < limit {
			matured = append(matured, model.TimeLockDocument{
				StakerAddress: addr,
				MaturityTime:  maturityTime,
			})
		}
	}
	return matured, nil
}

func (f *fakeDb) DeleteTimeLock(ctx context.Context, stakerAddress string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.timelocks, stakerAddress)
	return nil
}

// fakeAssetLedger keeps balances in memory and moves funds the way the real
// asset ledger service does.
type fakeAssetLedger struct {
	mu       sync.Mutex
	balances map[string]uint64
	custody  string

	transferFromErr error
	transferToErr   error
}

func newFakeAssetLedger(custody string) *fakeAssetLedger {
	return &fakeAssetLedger{
		balances: make(map[string]uint64),
		custody:  custody,
	}
}

func (f *fakeAssetLedger) TransferFrom(ctx context.Context, spender string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferFromErr != nil {
		return f.transferFromErr
	}
	if f.balances[spender] < amount {
		return types.NewErrorWithMsg(types.InsufficientFunds, "spender balance too low")
	}
	f.balances[spender] -= amount
	f.balances[f.custody] += amount
	return nil
}

func (f *fakeAssetLedger) TransferTo(ctx context.Context, to string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferToErr != nil {
		return f.transferToErr
	}
	if f.balances[f.custody] < amount {
		return types.NewErrorWithMsg(types.InsufficientFunds, "custody balance too low")
	}
	f.balances[f.custody] -= amount
	f.balances[to] += amount
	return nil
}

func (f *fakeAssetLedger) BalanceOf(ctx context.Context, address string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[address], nil
}

func (f *fakeAssetLedger) balanceOf(address string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[address]
}

func (f *fakeAssetLedger) setBalance(address string, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[address] = amount
}

type fakeEventPusher struct {
	mu     sync.Mutex
	events []*types.StakeEvent
}

func (f *fakeEventPusher) PushStakeEvent(ctx context.Context, event *types.StakeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventPusher) eventsOfType(eventType types.EventType) []*types.StakeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*types.StakeEvent
	for _, event := range f.events {
		if event.EventType == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type testLedger struct {
	service *Service
	db      *fakeDb
	ledger  *fakeAssetLedger
	queue   *fakeEventPusher

	ownerAddress   string
	custodyAddress string
}

// testPlanStart is the instant the plan is created in every test.
var testPlanStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

const (
	testPlanDuration     = 720 * time.Hour
	testInterestRate     = 32
	testCustodyInitFunds = 1_000_000
)

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()

	ownerAddress := testutil.RandomStakerAddress()
	custodyAddress := testutil.RandomStakerAddress()

	cfg := &config.Config{
		Plan: config.PlanConfig{
			Duration:            testPlanDuration,
			InterestRatePercent: testInterestRate,
		},
		Access: config.AccessConfig{
			OwnerAddress: ownerAddress,
		},
		AssetLedger: config.AssetLedgerConfig{
			CustodyAddress: custodyAddress,
		},
		Poller: config.PollerConfig{
			MaturityCheckInterval: time.Minute,
			MaturedStakesLimit:    100,
		},
	}

	fdb := newFakeDb()
	ledger := newFakeAssetLedger(custodyAddress)
	ledger.setBalance(custodyAddress, testCustodyInitFunds)
	queue := &fakeEventPusher{}
	gate := access.NewStaticOwnerGate(&cfg.Access, fdb)

	service := NewService(cfg, fdb, ledger, gate, queue)
	service.now = func() time.Time { return testPlanStart }

	if err := service.SyncPlanParams(context.Background()); err != nil {
		t.Fatalf("failed to sync plan params: %v", err)
	}

	return &testLedger{
		service:        service,
		db:             fdb,
		ledger:         ledger,
		queue:          queue,
		ownerAddress:   ownerAddress,
		custodyAddress: custodyAddress,
	}
}

// advanceTo moves the ledger clock to a fixed instant.
func (tl *testLedger) advanceTo(instant time.Time) {
	tl.service.now = func() time.Time { return instant }
}
