package validator

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// invalidSpecKey is the critical message used for unknown schema names.
const invalidSpecKey = "Invalid specification"

// Result is the outcome of validating one manifest.
//
// When Critical is set the manifest could not be evaluated at all and the
// message lists are empty. Otherwise Valid is true exactly when Errors is
// empty; warnings and recommendations never affect validity.
type Result struct {
	Valid           bool      `json:"valid" yaml:"valid"`
	Errors          []string  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings        []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Critical        *Critical `json:"critical,omitempty" yaml:"critical,omitempty"`
}

// Critical describes an input-level failure. It encodes either as a plain
// message string or, for an unknown schema, as {"Invalid specification": name}.
type Critical struct {
	Message string
	Spec    string // unrecognized schema name; set only for invalid specifications
}

func criticalMessage(msg string) *Critical {
	return &Critical{Message: msg}
}

func criticalSpec(name SpecName) *Critical {
	return &Critical{Message: invalidSpecKey, Spec: string(name)}
}

// InvalidSpec reports whether the failure is an unrecognized schema name.
func (c *Critical) InvalidSpec() bool {
	return c != nil && c.Message == invalidSpecKey
}

// String returns a single-line description.
func (c *Critical) String() string {
	if c.InvalidSpec() {
		return fmt.Sprintf("%s: %s", invalidSpecKey, c.Spec)
	}
	return c.Message
}

func (c *Critical) value() any {
	if c.InvalidSpec() {
		return map[string]string{invalidSpecKey: c.Spec}
	}
	return c.Message
}

// MarshalJSON implements json.Marshaler.
func (c *Critical) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value())
}

// MarshalYAML implements yaml.Marshaler.
func (c *Critical) MarshalYAML() (any, error) {
	return c.value(), nil
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (c *Critical) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		*c = Critical{Message: msg}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("critical: expected string or object: %w", err)
	}
	spec, ok := m[invalidSpecKey]
	if !ok || len(m) != 1 {
		return fmt.Errorf("critical: unexpected object %v", m)
	}
	*c = Critical{Message: invalidSpecKey, Spec: spec}
	return nil
}

// Options selects which advisory messages are reported. The zero value
// reports everything.
type Options struct {
	HideWarnings        bool
	HideRecommendations bool
}
