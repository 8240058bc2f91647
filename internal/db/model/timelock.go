package model

const TimeLockCollection = "timelock_queue"

// TimeLockDocument queues a maturity notification for a stake. Deleted once
// the StakeMatured event has been published; claim eligibility is always
// recomputed from the stake record, never from this queue.
type TimeLockDocument struct {
	StakerAddress string `bson:"_id"` // Primary key
	MaturityTime  int64  `bson:"maturity_time"`
}

func NewTimeLockDocument(stakerAddress string, maturityTime int64) *TimeLockDocument {
	return &TimeLockDocument{
		StakerAddress: stakerAddress,
		MaturityTime:  maturityTime,
	}
}
