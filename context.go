package coffer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/boardvault/coffer/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information and the logger to handlers. Values
// describing the block can be set only once.
type Context = context.Context

type ctxKey int

const (
	headerKey ctxKey = iota
	heightKey
	chainIDKey
	loggerKey
)

// DefaultLogger is returned by GetLogger when no logger was set.
var DefaultLogger = log.NewNopLogger()

// IsValidChainID returns true for 6 to 20 letters, digits, dashes and
// underscores.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// once panics if key is already set in ctx.
func once(ctx Context, key ctxKey, name string) {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
}

// WithHeader sets the header of the current block.
func WithHeader(ctx Context, h abci.Header) Context {
	once(ctx, headerKey, "header")
	return context.WithValue(ctx, headerKey, h)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

// WithHeight sets the height of the current block.
func WithHeight(ctx Context, height int64) Context {
	once(ctx, heightKey, "height")
	return context.WithValue(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// BlockTime returns the time declared in the block header. Outside of a
// block there is no header and ErrHuman is returned.
func BlockTime(ctx Context) (time.Time, error) {
	h, ok := GetHeader(ctx)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block header in context")
	}
	return h.Time, nil
}

// WithChainID sets the chain ID. It panics on an invalid ID.
func WithChainID(ctx Context, chainID string) Context {
	once(ctx, chainIDKey, "chain ID")
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain ID %q", chainID))
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID returns the chain ID. Handlers always run with one, so a
// missing ID is a programming error and panics.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain ID in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds key value pairs to every later log line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
