package app

import (
	"context"
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
	"github.com/boardvault/coffer/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicHandler panics on every call.
type panicHandler struct{}

func (panicHandler) Check(coffer.Context, coffer.KVStore, coffer.Tx) (*coffer.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(coffer.Context, coffer.KVStore, coffer.Tx) (*coffer.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	c1 := &coffertest.Decorator{}
	c2 := &coffertest.Decorator{}
	var missing *coffertest.Decorator
	h := &coffertest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		missing,
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "vault/create"}}

	_, err := stack.Check(ctx, db, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a panic below the recovery decorator becomes an error
	panicky := ChainDecorators(c1, utils.NewRecovery(), c2).WithHandler(panicHandler{})
	_, err = panicky.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = panicky.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
}
