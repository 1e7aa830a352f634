package orm

import (
	"reflect"

	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// Model is a protobuf message that checks its own state before it is
// written.
type Model interface {
	proto.Message
	Validate() error
}

// Object binds a model to the primary key it is stored under.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Value() Model
	Validate() error
	// Clone returns an object without a value set, holding an empty model
	// of the same type.
	Clone() Object
}

// SimpleObj is the Object used by every bucket of this module.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object storing value under key.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte      { return o.key }
func (o *SimpleObj) SetKey(k []byte) { o.key = k }
func (o SimpleObj) Value() Model     { return o.value }

// Validate requires a key and a valid model.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return errors.Field("Value", o.value.Validate(), "invalid value")
}

func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) != 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: empty}
}
