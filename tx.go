package coffer

import (
	"reflect"

	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// Msg is the action a transaction asks for. Authentication data lives in
// the enclosing Tx, never in the message.
type Msg interface {
	proto.Message

	// Path selects the handler of the message, for example
	// "vault/approve". Paths use [0-9A-Za-z_\-/] only.
	Path() string

	// Validate checks the message on its own, without reading the state.
	Validate() error
}

// Tx is a message together with whatever the decorators need to process
// it, such as signatures.
type Tx interface {
	proto.Message

	GetMsg() (Msg, error)
}

// GetPath returns the path of the message of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses the raw bytes of a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into dest, which must point to a value
// of the message type, and validates it.
//
//	var msg CreateVaultMsg
//	if err := coffer.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	src := reflect.ValueOf(msg)
	if msg == nil || (src.Kind() == reflect.Ptr && src.IsNil()) {
		return errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src = reflect.Indirect(src)
	if want := out.Elem().Type(); !src.Type().AssignableTo(want) {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	out.Elem().Set(src)
	return nil
}
