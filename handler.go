package coffer

import (
	"bytes"
	"encoding/json"

	"github.com/boardvault/coffer/errors"
)

// Handler executes the messages routed to it, for example a cash transfer
// or the approval of a vault proposal.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the mempool state. It must reject
// everything Deliver would reject without having to run it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before and after the next handler of the stack. Signature
// checks, logging and panic recovery are decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of the genesis file. Every extension reads its
// own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value of key into obj. A missing key leaves obj
// untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Stream decodes the JSON list stored under key one element at a time.
// Every call of the returned function decodes the next element into obj
// and returns ErrEmpty after the last one. A missing key is ErrEmpty too.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	raw := o[key]
	if len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q key", key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%q: %s", key, err)
	} else if tok != json.Delim('[') {
		return nil, errors.Wrapf(errors.ErrInput, "%q is not a list", key)
	}
	next := func(obj interface{}) error {
		if !dec.More() {
			return errors.ErrEmpty
		}
		if err := dec.Decode(obj); err != nil {
			return errors.Wrapf(errors.ErrInput, "%q: %s", key, err)
		}
		return nil
	}
	return next, nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers returns an initializer running all of inits in order.
// The first failure stops the loading.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (inits initializers) FromGenesis(opts Options, kv KVStore) error {
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
