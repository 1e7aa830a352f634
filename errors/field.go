package errors

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Field wraps err as the failure of a single attribute of a model or
// message. Name the attribute the way the Go field is named and use dots for
// nested values and slice positions, for example Amount.Ticker or Members.2.
// A nil err stays nil.
func Field(name string, err error, format string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	note := format
	if len(args) != 0 {
		note = fmt.Sprintf(format, args...)
	}
	return &fieldError{name: name, note: note, parent: err}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name   string
	note   string
	parent error
}

func (f *fieldError) Error() string {
	if f.note != "" {
		return fmt.Sprintf("field %q: %s: %s", f.name, f.note, f.parent)
	}
	return fmt.Sprintf("field %q: %s", f.name, f.parent)
}

func (f *fieldError) Cause() error {
	return f.parent
}

// FieldErrors returns the errors reported for the named field. The whole
// tree of wrapped and appended errors is searched. A field error is returned
// as found, errors nested in it are not searched further.
func FieldErrors(err error, name string) []error {
	var found []error
	for ; !isNilErr(err); err = cause(err) {
		if f, ok := err.(*fieldError); ok && f.name == name {
			return append(found, err)
		}
		if errs := multierr.Errors(err); len(errs) > 1 {
			for _, sub := range errs {
				found = append(found, FieldErrors(sub, name)...)
			}
			return found
		}
	}
	return found
}
