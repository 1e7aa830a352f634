package sigs

import (
	"github.com/boardvault/coffer/errors"
)

// ErrInvalidSequence is returned when a signature carries a nonce other than
// the one expected for the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
