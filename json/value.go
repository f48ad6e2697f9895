// Package json decodes a JSON-like document into a tagged Value using a
// recursive grammar built from the parser combinators.
//
// Numbers are non-negative integers and strings support backslash escapes of
// a single character; there are no floats, exponents or \u escapes.
package json

import (
	stdjson "encoding/json"
	"strings"
)

// Value is one of Null, Bool, Number, String, Array or Object.
type Value interface {
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	Number int
	String string
	Array  []Value
	Object []Member
)

// Member is a key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Get returns the value bound to key. When a key appears more than once the
// last binding wins.
func (o Object) Get(key string) (Value, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of o in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON encodes o with its keys in document order.
func (o Object) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := stdjson.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		data, err := stdjson.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		b.Write(data)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// ToAny converts v to nil, bool, int, string, []any and map[string]any.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return int(v)
	case String:
		return string(v)
	case Array:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = ToAny(item)
		}
		return items
	case Object:
		members := make(map[string]any, len(v))
		for _, m := range v {
			members[m.Key] = ToAny(m.Value)
		}
		return members
	default:
		return nil
	}
}
