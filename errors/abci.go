package errors

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

const (
	// SuccessABCICode is the code of a response without an error.
	SuccessABCICode = 0

	// Errors without a registered kind share one code and, outside of debug
	// mode, one message. Their text may differ between nodes.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and the log of the response reporting err.
// Unless debug is set, the message of an unregistered error is replaced by
// a generic one.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first kind found while unwrapping. The
// code of a multi error is the code of its first error.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		if errs := multierr.Errors(err); len(errs) > 1 {
			err = errs[0]
		} else {
			err = cause(err)
		}
	}
	return internalABCICode
}

// Redact replaces panics and errors without a registered kind by a generic
// internal error, so that node internals are not sent to clients. Debug mode
// keeps everything.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
