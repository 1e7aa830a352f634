package utils

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
)

// Savepoint runs the rest of the chain on a cache of the store and writes it
// back only if no error was returned, so a failed transaction leaves no
// partial state behind. It is enabled separately for check and deliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ coffer.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint enabled for nothing yet.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Checker) (*coffer.CheckResult, error) {
	var res *coffer.CheckResult
	err := s.run(s.onCheck, db, func(db coffer.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Deliverer) (*coffer.DeliverResult, error) {
	var res *coffer.DeliverResult
	err := s.run(s.onDeliver, db, func(db coffer.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// run calls fn on a cache of db when enabled and db can be cached, and on
// db itself otherwise.
func (Savepoint) run(enabled bool, db coffer.KVStore, fn func(coffer.KVStore) error) error {
	cacheable, ok := db.(coffer.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "savepoint")
}
