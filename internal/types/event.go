package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventStakeCreatedType  EventType = "stakelock.ledger.v1.EventStakeCreated"
	EventStakeMaturedType  EventType = "stakelock.ledger.v1.EventStakeMatured"
	EventRewardClaimedType EventType = "stakelock.ledger.v1.EventRewardClaimed"
)

// StakeEvent is the message published to the queue for every ledger
// transition. Amounts are base units of the underlying asset, timestamps are
// unix seconds.
type StakeEvent struct {
	EventType     EventType `json:"event_type"`
	StakerAddress string    `json:"staker_address"`
	Principal     uint64    `json:"principal"`
	Reward        uint64    `json:"reward,omitempty"`
	MaturityTime  int64     `json:"maturity_time"`
	Timestamp     int64     `json:"timestamp"`
}
