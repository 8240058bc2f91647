package types

// Enum values for stake record state
type StakeState string

const (
	// StateActive means the principal is locked and the reward is not yet paid out.
	StateActive StakeState = "ACTIVE"
	// StateClaimed means principal plus reward have been paid out. Terminal.
	StateClaimed StakeState = "CLAIMED"
)

func (s StakeState) String() string {
	return string(s)
}

// QualifiedStatesForClaim returns the current states from which a stake
// record may transition to CLAIMED.
func QualifiedStatesForClaim() []StakeState {
	return []StakeState{StateActive}
}
