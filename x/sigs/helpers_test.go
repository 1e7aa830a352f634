package sigs

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
)

// stdTx is a signed transaction whose sign bytes are a fixed payload.
type stdTx struct {
	coffertest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ coffer.Tx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	return &stdTx{
		Tx:      coffertest.Tx{Msg: &coffertest.Msg{RoutePath: "test/sigs"}},
		payload: payload,
	}
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

// sigCheckHandler stores the seen signers on each call
type sigCheckHandler struct {
	Signers []coffer.Condition
}

var _ coffer.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &coffer.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx coffer.Context, store coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &coffer.DeliverResult{}, nil
}
