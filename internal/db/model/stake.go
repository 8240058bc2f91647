package model

import (
	"github.com/stakelock-io/staking-ledger/internal/types"
)

const StakeRecordCollection = "stake_records"

// StakeRecordDocument is the one-per-participant stake record. The staker
// address is the primary key, so a participant can never hold two records.
// Records are never deleted; the collection count is the total stakers
// counter.
type StakeRecordDocument struct {
	StakerAddress string           `bson:"_id"` // Primary key
	StartTime     int64            `bson:"start_time"`
	MaturityTime  int64            `bson:"maturity_time"`
	Principal     uint64           `bson:"principal"`
	State         types.StakeState `bson:"state"`
	Reward        uint64           `bson:"reward,omitempty"`
	ClaimedAt     int64            `bson:"claimed_at,omitempty"`
}

func NewStakeRecordDocument(
	stakerAddress string, startTime, maturityTime int64, principal uint64,
) *StakeRecordDocument {
	return &StakeRecordDocument{
		StakerAddress: stakerAddress,
		StartTime:     startTime,
		MaturityTime:  maturityTime,
		Principal:     principal,
		State:         types.StateActive,
	}
}
