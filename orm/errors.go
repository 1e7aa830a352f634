package orm

import (
	"github.com/boardvault/coffer/errors"
)

// ErrInvalidIndex is returned when a bucket has no index of the requested
// name. Codes 100 to 109 belong to this package.
var ErrInvalidIndex = errors.Register(100, "invalid index")
