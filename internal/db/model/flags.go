package model

const LedgerFlagsCollection = "ledger_flags"

// LedgerFlagsDocument is a single-document collection holding the mutable
// administrative flags. Absence of the document means the ledger is not
// paused.
type LedgerFlagsDocument struct {
	Paused bool `bson:"paused"`
}
