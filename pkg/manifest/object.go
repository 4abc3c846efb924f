package manifest

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Object is a JSON object that remembers the order its keys were first seen.
//
// Values are string, json.Number, bool, nil, []any or *Object. Setting an
// existing key replaces its value but keeps its original position, matching
// how duplicate keys behave in a JSON document.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it is present.
// A present key may hold a nil (JSON null) value.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON encodes the object with keys in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Kinds of manifest values as reported in type errors.
const (
	KindArray   = "array"
	KindBoolean = "boolean"
	KindNull    = "null"
	KindNumber  = "number"
	KindObject  = "object"
	KindString  = "string"
)

// KindOf names the JSON kind of v. Plain Go maps and slices are accepted so
// documents can be assembled by hand.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return KindNumber
	case []any:
		return KindArray
	case *Object, map[string]any:
		return KindObject
	}
	return KindObject
}

// Lookup returns the value stored under key when v is an object.
func Lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case *Object:
		return m.Get(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}

// Text renders v for use in messages: strings as-is, everything else as JSON.
func Text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
