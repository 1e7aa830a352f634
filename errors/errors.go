package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Kinds shared by all packages. Codes 1 to 99 belong to this package,
// extensions register from 100 up.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrModel        = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")
	// ErrHuman marks a code path that a correct program never takes.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	// ErrAmount also covers a balance too low for a transfer.
	ErrAmount   = Register(12, "invalid amount")
	ErrInput    = Register(13, "invalid input")
	ErrCurrency = Register(14, "invalid currency code")
	// ErrDatabase is a failure of the underlying storage.
	ErrDatabase     = Register(15, "database")
	ErrIteratorDone = Register(16, "iterator done")
	ErrOverflow     = Register(17, "an operation cannot be completed due to value overflow")

	// ErrPanic is only ever produced by Recover. Its message may carry
	// node internals, so Redact hides it.
	ErrPanic = Register(111222, "panic")
)

// registry maps every ABCI code to its kind. Code 1 is the internal error
// code and cannot be registered.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a new error kind. It panics if the code is taken, so
// call it only when initializing package variables.
func Register(code uint32, description string) *Error {
	if _, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered", code))
	}
	kind := &Error{code: code, desc: description}
	registry[code] = kind
	return kind
}

// Error is a registered error kind. Errors returned at runtime wrap one of
// the kinds, so that clients receive a stable code together with the
// message.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// ABCICode returns the registered code.
func (e Error) ABCICode() uint32 { return e.code }

// Is returns true if err is of this kind, after unwrapping. A multi error is
// of every kind it holds. A nil kind matches only nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for ; err != nil; err = cause(err) {
		if err == error(e) {
			return true
		}
		if errs := multierr.Errors(err); len(errs) > 1 {
			for _, sub := range errs {
				if e.Is(sub) {
					return true
				}
			}
			return false
		}
	}
	return false
}

// Wrap prefixes err with the message. The innermost wrap records the stack
// trace. A nil err stays nil, so the result of a call can be wrapped
// directly:
//
//	return errors.Wrap(b.Save(db, obj), "save vault")
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: msg, parent: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the name of the type of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg    string
	parent error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.parent.Error()
}

func (w *wrapped) Cause() error {
	return w.parent
}

type causer interface {
	Cause() error
}

// cause returns the error wrapped by err, or nil.
func cause(err error) error {
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

// isNilErr also catches a typed nil pointer stored in the interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found while unwrapping.
func stackTrace(err error) errors.StackTrace {
	for ; err != nil; err = cause(err) {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

// Append clubs the errors together, skipping nils. A single error is
// returned as is, several are returned as a multi error whose ABCI code is
// the code of the first one.
func Append(errs ...error) error {
	var res error
	for _, err := range errs {
		if !isNilErr(err) {
			res = multierr.Append(res, err)
		}
	}
	return res
}
