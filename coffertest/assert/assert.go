// Package assert holds the few assertions shared by coffer tests. Every
// assertion stops the test on failure.
package assert

import (
	"reflect"

	"github.com/boardvault/coffer/errors"
)

// Tester is implemented by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil stops the test unless value is nil, including a typed nil. A non nil
// error is printed with its stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if value == nil {
		return
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if v.IsNil() {
			return
		}
	}
	t.Fatalf("not nil: %+v", value)
}

// Equal compares with reflect.DeepEqual.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("mismatch\nwant (%T) %v\ngot  (%T) %v", want, want, got, got)
}

// Panics stops the test if fn returns normally.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			return
		}
		t.Fatal("function did not panic")
	}()
	fn()
}

// IsErr stops the test unless got is of the want kind. A nil *errors.Error
// want accepts only a nil error.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if k, ok := want.(interface{ Is(error) bool }); ok && k.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}

// FieldError checks the errors reported for a single field of a validated
// message. With a nil want the field must be clean, otherwise exactly one
// error of that kind must be reported.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	if want == nil && len(found) == 0 {
		return
	}
	if want != nil && len(found) == 1 {
		if !want.Is(found[0]) {
			t.Fatalf("field %s: want %q, got %q", field, want, found[0])
		}
		return
	}
	for i, e := range found {
		t.Logf("field %s error %d: %q", field, i, e)
	}
	if want == nil {
		t.Fatalf("field %s: want no error, got %d", field, len(found))
	}
	t.Fatalf("field %s: want a single %q error, got %d", field, want, len(found))
}
