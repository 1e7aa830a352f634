package utils

import (
	"time"

	"github.com/boardvault/coffer"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log entry per transaction with its route, the block
// time and how long the handler took.
type Logging struct{}

var _ coffer.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs failures as errors and success at debug level, because every
// transaction is checked more than once.
func (Logging) Check(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx, next coffer.Checker) (*coffer.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := txLogger(ctx, start, tx)
	switch {
	case err != nil:
		logger.Error("check failed", "err", err)
	case res != nil:
		logger.Debug("check", "log", res.Log)
	}
	return res, err
}

// Deliver logs failures as errors and success at info level.
func (Logging) Deliver(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx, next coffer.Deliverer) (*coffer.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := txLogger(ctx, start, tx)
	switch {
	case err != nil:
		logger.Error("deliver failed", "err", err)
	case res != nil:
		logger.Info("deliver", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx coffer.Context, start time.Time, tx coffer.Tx) log.Logger {
	logger := coffer.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if bt, err := coffer.BlockTime(ctx); err == nil {
		logger = logger.With("block_time", bt.UTC().Format(time.RFC3339))
	}
	if tx != nil {
		if m, err := tx.GetMsg(); err == nil && m != nil {
			logger = logger.With("path", m.Path())
		}
	}
	return logger
}
