package coffer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/boardvault/coffer/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 41)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(41), h)
	assert.Panics(t, func() { WithHeight(ctx, 42) })

	assert.Panics(t, func() { GetChainID(ctx) })
	withID := WithChainID(ctx, "vault-chain")
	assert.Equal(t, "vault-chain", GetChainID(withID))
	assert.Panics(t, func() { WithChainID(withID, "vault-chain") })
	assert.Panics(t, func() { WithChainID(ctx, "tiny") })

	_, err := BlockTime(ctx)
	assert.True(t, errors.ErrHuman.Is(err))
	opened := time.Date(2019, 11, 4, 9, 30, 0, 0, time.UTC)
	ctx = WithHeader(ctx, abci.Header{Height: 41, Time: opened})
	header, ok := GetHeader(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(41), header.Height)
	bt, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, opened, bt)
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })
}

func TestLogInfo(t *testing.T) {
	assert.Equal(t, DefaultLogger, GetLogger(context.Background()))

	var out bytes.Buffer
	ctx := WithLogger(context.Background(), log.NewTMLogger(&out))
	ctx = WithLogInfo(ctx, "vault", "0001")
	GetLogger(ctx).Info("proposal submitted")
	assert.Contains(t, out.String(), "proposal submitted")
	assert.Contains(t, out.String(), "vault=0001")
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                      false,
		"short":                 false,
		"coffer":                true,
		"board-vault_01":        true,
		"semi;colon":            false,
		"twenty-one-characters": false,
		"exactly-twenty-chars":  true,
	}
	for id, want := range cases {
		assert.Equal(t, want, IsValidChainID(id), id)
	}
}
