package coffertest

import "github.com/boardvault/coffer"

// Decorator is a mock implementation of the coffer.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. Otherwise the wrapped handler is called. Every call
// is counted, regardless of its result.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by Check before calling the wrapped
	// handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by Deliver before calling the wrapped
	// handler.
	DeliverErr error
}

var _ coffer.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Checker) (*coffer.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Deliverer) (*coffer.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls given decorator with h as the next
// handler.
func Decorate(h coffer.Handler, d coffer.Decorator) coffer.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn coffer.Handler
	dc coffer.Decorator
}

func (d *decoratedHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
