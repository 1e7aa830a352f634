package utils

import (
	"context"
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	// Panic details are hidden from the client.
	code, log := errors.ABCIInfo(errors.Redact(err, false), false)
	assert.Equal(t, uint32(1), code)
	assert.Equal(t, "internal error", log)
}

type panicHandler struct{}

var _ coffer.Handler = panicHandler{}

func (p panicHandler) Check(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	panic("deliver panic")
}
