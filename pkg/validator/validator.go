package validator

import (
	"github.com/matzehuels/pjv/pkg/manifest"
)

// Validate parses data and checks it against the named specification.
//
// data is the manifest text as a string or []byte. An empty name selects
// npm. Validate never panics on malformed input and reports every problem
// in the returned Result; it is safe for concurrent use.
func Validate(data any, name SpecName, opts Options) *Result {
	doc, reason := manifest.Parse(data)
	if reason != "" {
		return &Result{Critical: criticalMessage(reason)}
	}
	return ValidateDocument(doc, name, opts)
}

// ValidateDocument checks an already parsed manifest.
func ValidateDocument(doc *manifest.Object, name SpecName, opts Options) *Result {
	if name == "" {
		name = NPM
	}
	private, _ := doc.Get("private")
	schema, ok := SpecFor(name, truthy(private))
	if !ok {
		return &Result{Critical: criticalSpec(name)}
	}

	var e evaluation
	for _, rule := range schema.Rules {
		e.field(doc, rule)
	}

	out := &Result{Valid: len(e.errors) == 0}
	if len(e.errors) > 0 {
		out.Errors = e.errors
	}
	if !opts.HideWarnings && len(e.warnings) > 0 {
		out.Warnings = e.warnings
	}
	if !opts.HideRecommendations && len(e.recommendations) > 0 {
		out.Recommendations = e.recommendations
	}
	return out
}

type evaluation struct {
	errors          []string
	warnings        []string
	recommendations []string
}

func (e *evaluation) field(doc *manifest.Object, rule Rule) {
	value, ok := doc.Get(rule.Name)
	if !ok {
		if rule.Or != "" && doc.Has(rule.Or) {
			return
		}
		switch rule.Priority {
		case Required:
			e.errors = append(e.errors, "Missing required field: "+rule.Name)
		case Warning:
			e.warnings = append(e.warnings, "Missing recommended field: "+rule.Name)
		case Recommended:
			e.recommendations = append(e.recommendations, "Missing optional field: "+rule.Name)
		}
		return
	}

	// A wrong type makes the remaining checks meaningless.
	if errs := ValidateType(rule.Name, rule, value); len(errs) > 0 {
		e.errors = append(e.errors, errs...)
		return
	}

	if rule.Format != nil {
		if s, ok := value.(string); ok && !rule.Format.MatchString(s) {
			e.errors = append(e.errors, "Value for field "+rule.Name+", "+s+" does not match format: "+rule.Format.String())
		}
	}

	if rule.Validate != nil {
		e.errors = append(e.errors, rule.Validate(rule.Name, value)...)
	}
}
