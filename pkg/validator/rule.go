package validator

import (
	"strings"

	"github.com/matzehuels/pjv/pkg/format"
	"github.com/matzehuels/pjv/pkg/manifest"
)

// Kind is a JSON value kind a field may be declared to hold.
type Kind string

// Kinds usable in a Rule.
const (
	Array   Kind = manifest.KindArray
	Boolean Kind = manifest.KindBoolean
	Object  Kind = manifest.KindObject
	String  Kind = manifest.KindString
)

// Priority controls which message is produced when a field is missing.
type Priority int

const (
	// Optional fields produce no message when missing.
	Optional Priority = iota
	// Required fields produce an error.
	Required
	// Warning fields produce a warning.
	Warning
	// Recommended fields produce a recommendation.
	Recommended
)

// String returns the lowercase priority name.
func (p Priority) String() string {
	switch p {
	case Required:
		return "required"
	case Warning:
		return "warning"
	case Recommended:
		return "recommended"
	default:
		return "optional"
	}
}

// Func checks the value of a composite field and returns one message per
// defect found. field is the name the value was found under.
type Func func(field string, value any) []string

// Rule is the contract for a single manifest field.
type Rule struct {
	Name     string
	Types    []Kind          // allowed kinds; empty means any
	Priority Priority        // message tier when missing
	Or       string          // companion field that also satisfies presence
	Format   *format.Pattern // applied to string values
	Validate Func
}

// TypeNames joins the allowed kinds the way type errors print them.
func (r Rule) TypeNames() string {
	names := make([]string, len(r.Types))
	for i, k := range r.Types {
		names[i] = string(k)
	}
	return strings.Join(names, " or ")
}

func (r Rule) allows(kind string) bool {
	for _, k := range r.Types {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// ValidateType checks value against the rule's declared kinds. Rules that
// declare no kinds accept anything.
func ValidateType(name string, rule Rule, value any) []string {
	if len(rule.Types) == 0 {
		return nil
	}
	kind := manifest.KindOf(value)
	if kind == manifest.KindNull {
		// null is typed as an object, so it satisfies object fields and is
		// reported as "object" everywhere else.
		kind = manifest.KindObject
	}
	if rule.allows(kind) {
		return nil
	}
	return []string{"Type for field " + name + " was expected to be " + rule.TypeNames() + ", not " + kind}
}
