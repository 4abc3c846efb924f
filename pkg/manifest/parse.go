package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// Failure reasons returned by Parse.
const (
	ReasonNotString   = "Invalid data - Not a string"
	ReasonInvalidJSON = "Invalid JSON"
)

// Parse turns manifest text into an ordered Object.
//
// data may be a string, []byte or json.RawMessage. On failure Parse returns a
// nil Object and a human-readable reason; it never returns both.
func Parse(data any) (*Object, string) {
	var raw []byte
	switch d := data.(type) {
	case string:
		raw = []byte(d)
	case []byte:
		raw = d
	case json.RawMessage:
		raw = d
	default:
		return nil, ReasonNotString
	}

	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Sprintf("%s - %v", ReasonInvalidJSON, err)
	}
	if !json.Valid(raw) {
		return nil, ReasonInvalidJSON
	}

	if _, ok := probe.(map[string]any); !ok {
		return nil, fmt.Sprintf("%s - not an object (actual type: %s)", ReasonInvalidJSON, kindOfProbe(probe))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Sprintf("%s - %v", ReasonInvalidJSON, err)
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Sprintf("%s - not an object (actual type: %s)", ReasonInvalidJSON, KindOf(v))
	}
	return obj, ""
}

func kindOfProbe(v any) string {
	if _, ok := v.(float64); ok {
		return KindNumber
	}
	return KindOf(v)
}

var errUnexpectedEnd = errors.New("unexpected end of JSON input")

// decodeValue reads one value from the token stream. Input has already been
// checked by json.Valid, so the stream is well formed.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errUnexpectedEnd
		}
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok any) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string, json.Number, bool, nil:
		return t, nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errUnexpectedEnd
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errUnexpectedEnd
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		v, err := decodeToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
