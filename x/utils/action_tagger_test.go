package utils

import (
	"context"
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/coffertest/assert"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
)

func stringTag(key, value string) coffer.KVPair {
	return coffer.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler coffer.Handler
		tx      coffer.Tx
		err     *errors.Error
		tags    []coffer.KVPair
	}{
		"simple call": {
			handler: &coffertest.Handler{},
			tx:      &coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "vault/create"}},
			tags:    []coffer.KVPair{stringTag(ActionKey, "vault/create")},
		},
		"passes through error": {
			handler: &coffertest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "vault/create"}},
			err:     errors.ErrHuman,
		},
		"message error is returned before dispatching": {
			handler: &coffertest.Handler{},
			tx:      &coffertest.Tx{Err: errors.ErrMsg},
			err:     errors.ErrMsg,
		},
		"tags are additive": {
			handler: &coffertest.Handler{
				DeliverResult: coffer.DeliverResult{Tags: []coffer.KVPair{stringTag("vault.id", "1")}},
			},
			tx: &coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "vault/approve"}},
			tags: []coffer.KVPair{
				stringTag("vault.id", "1"),
				stringTag(ActionKey, "vault/approve"),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := coffertest.Decorate(tc.handler, NewActionTagger())
			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
