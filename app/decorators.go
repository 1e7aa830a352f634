package app

import (
	"reflect"

	"github.com/boardvault/coffer"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator of the stack sees a transaction first.
//
//	app.ChainDecorators(
//	  utils.NewLogging(),
//	  utils.NewRecovery(),
//	  sigs.NewDecorator(),
//	  utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators []coffer.Decorator

// ChainDecorators returns a stack of the given decorators. Nil values are
// skipped, so that an optional decorator can be listed inline.
func ChainDecorators(ds ...coffer.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with the decorators appended.
func (d Decorators) Chain(ds ...coffer.Decorator) Decorators {
	res := make(Decorators, 0, len(d)+len(ds))
	res = append(res, d...)
	for _, dec := range ds {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, dec)
	}
	return res
}

// WithHandler returns a handler passing every transaction through the stack
// before it reaches h.
func (d Decorators) WithHandler(h coffer.Handler) coffer.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = decorated{decorator: d[i], next: h}
	}
	return h
}

type decorated struct {
	decorator coffer.Decorator
	next      coffer.Handler
}

func (d decorated) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
