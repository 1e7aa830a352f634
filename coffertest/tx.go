package coffertest

import (
	"fmt"

	"github.com/boardvault/coffer"
)

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg coffer.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ coffer.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (coffer.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return fmt.Sprintf("Tx{%v}", tx.Msg) }
func (*Tx) ProtoMessage()     {}

// Msg is a message routed by its RoutePath. Validation returns Err.
type Msg struct {
	// RoutePath is returned by the Path method and consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ coffer.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return fmt.Sprintf("Msg{%s}", m.RoutePath) }
func (*Msg) ProtoMessage()    {}
