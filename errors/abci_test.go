package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// coded carries its own ABCI code without being registered.
type coded struct{}

func (coded) ABCICode() uint32 { return 999 }
func (coded) Error() string    { return "coded" }

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error":               {err: nil, wantCode: SuccessABCICode},
		"typed nil":              {err: (*Error)(nil), wantCode: SuccessABCICode},
		"kind":                   {err: ErrUnauthorized, wantCode: 2, wantLog: "unauthorized"},
		"wrapped kind":           {err: Wrap(Wrap(ErrNotFound, "vault 3"), "approve"), wantCode: 3, wantLog: "approve: vault 3: not found"},
		"field error":            {err: Field("Amount", ErrAmount, "zero"), wantCode: 12, wantLog: `field "Amount": zero: invalid amount`},
		"first of a multi error": {err: Append(Wrap(ErrEmpty, "beneficiary"), ErrAmount), wantCode: 9, wantLog: "beneficiary: value is empty; invalid amount"},
		"unregistered":           {err: io.EOF, wantCode: 1, wantLog: "internal error"},
		"wrapped unregistered":   {err: Wrap(io.EOF, "read genesis"), wantCode: 1, wantLog: "internal error"},
		"unregistered in debug":  {err: Wrap(io.EOF, "read genesis"), debug: true, wantCode: 1, wantLog: "read genesis: EOF"},
		"own code":               {err: coded{}, wantCode: 999, wantLog: "coded"},
		"own code in debug":      {err: coded{}, debug: true, wantCode: 999, wantLog: "coded"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestRedact(t *testing.T) {
	assert.False(t, ErrPanic.Is(Redact(ErrPanic, false)), "panic not redacted")
	assert.True(t, ErrPanic.Is(Redact(ErrPanic, true)), "debug mode redacted")
	assert.EqualError(t, Redact(Wrap(io.EOF, "read"), false), "internal error")

	signer := Wrap(ErrUnauthorized, "signer")
	assert.Equal(t, signer, Redact(signer, false))
	assert.Nil(t, Redact(nil, false))
}
