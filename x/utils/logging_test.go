package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := coffer.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "vault/submit"}}

	_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, &coffertest.Handler{})
	assert.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "duration="), out)
	assert.True(t, strings.Contains(out, "path=vault/submit"), out)
	assert.False(t, strings.Contains(out, "block_time="), out)

	buf.Reset()
	blockTime := time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)
	inBlock := coffer.WithHeader(ctx, abci.Header{Time: blockTime})
	_, err = NewLogging().Deliver(inBlock, store.MemStore(), tx, &coffertest.Handler{})
	assert.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "block_time=2019-05-01T12:00:00Z"), buf.String())

	buf.Reset()
	_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, &coffertest.Handler{DeliverErr: errors.ErrAmount})
	assert.True(t, errors.ErrAmount.Is(err))
	assert.True(t, strings.Contains(buf.String(), "err="), buf.String())
}
