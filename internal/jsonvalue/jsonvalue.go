// Package jsonvalue represents JSON responses from the store listener as a
// small tagged tree. The listener's reply shapes vary by request type and are
// not guaranteed, so every accessor is fallible and reports absence instead
// of panicking.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	apperrors "passstore/cli/internal/errors"
)

// Kind identifies the type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one node of a decoded JSON document. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	a    []Value
	o    map[string]Value
}

// Parse decodes exactly one JSON document from data.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, apperrors.Wrap(apperrors.JSON, "parse response", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, apperrors.New(apperrors.JSON, "parse response: trailing data after document")
	}
	return FromAny(raw), nil
}

// FromAny converts the output of encoding/json (decoded with UseNumber or
// not) into a Value. Unknown types become null.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case bool:
		return Value{kind: Bool, b: x}
	case json.Number:
		return Value{kind: Number, n: x}
	case float64:
		return Value{kind: Number, n: json.Number(fmt.Sprint(x))}
	case string:
		return Value{kind: String, s: x}
	case []any:
		arr := make([]Value, len(x))
		for i, el := range x {
			arr[i] = FromAny(el)
		}
		return Value{kind: Array, a: arr}
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, el := range x {
			obj[k] = FromAny(el)
		}
		return Value{kind: Object, o: obj}
	default:
		return Value{}
	}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != Number {
		return "", false
	}
	return v.n, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != Array {
		return nil, false
	}
	return v.a, true
}

func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.o, true
}

// Lookup returns the named field of an object.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	el, ok := v.o[key]
	return el, ok
}

// Get returns the named field, or null when v is not an object or the
// field is absent.
func (v Value) Get(key string) Value {
	el, _ := v.Lookup(key)
	return el
}
