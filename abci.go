package coffer

import (
	"github.com/tendermint/tendermint/libs/common"
)

// KVPair is a single tag attached to a transaction result. Tendermint
// indexes transactions by their tags, so that for example every approval of
// a proposal can be searched for.
type KVPair = common.KVPair

// DeliverResult is what a handler returns when a transaction was applied.
// Failures are always reported as an error instead.
type DeliverResult struct {
	// Data is a machine readable result, for example the ID of a created
	// vault or proposal.
	Data []byte
	// Log is a human readable note.
	Log string
	// Tags are indexed by tendermint.
	Tags []KVPair
}

// CheckResult is what a handler returns when a transaction may enter the
// mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the units of work the transaction may use.
	GasAllocated int64
	// GasPayment is the work already spent on the transaction, for example
	// on signature verification.
	GasPayment int64
}
