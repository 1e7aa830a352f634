package vault

import "github.com/boardvault/coffer/errors"

// vault takes codes 300-306
var (
	ErrUnauthorized          = errors.Register(300, "Caller is not a valid owner")
	ErrInvalidAmount         = errors.Register(301, "Amount must be greater than zero")
	ErrInvalidBeneficiary    = errors.Register(302, "Invalid beneficiary")
	ErrAlreadySigned         = errors.Register(303, "Already signed")
	ErrUnknownProposal       = errors.Register(304, "Unknown proposal")
	ErrAlreadySettled        = errors.Register(305, "Already settled")
	ErrInsufficientApprovals = errors.Register(306, "Not enough approvals")
)
