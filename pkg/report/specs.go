package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/validator"
)

// Spec describes one specification for listing.
type Spec struct {
	Name  string `json:"name" yaml:"name"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Rule describes one field rule for listing.
type Rule struct {
	Field     string   `json:"field" yaml:"field"`
	Types     []string `json:"types,omitempty" yaml:"types,omitempty"`
	Priority  string   `json:"priority" yaml:"priority"`
	Or        string   `json:"or,omitempty" yaml:"or,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Validator bool     `json:"validator,omitempty" yaml:"validator,omitempty"`
}

// Specs describes every built-in specification as it applies to a public
// package.
func Specs() []Spec {
	names := validator.SpecNames()
	out := make([]Spec, 0, len(names))
	for _, name := range names {
		schema, _ := validator.SpecFor(name, false)
		out = append(out, describe(schema))
	}
	return out
}

func describe(s validator.Schema) Spec {
	spec := Spec{Name: string(s.Name), Rules: make([]Rule, len(s.Rules))}
	for i, r := range s.Rules {
		rule := Rule{
			Field:     r.Name,
			Priority:  r.Priority.String(),
			Or:        r.Or,
			Validator: r.Validate != nil,
		}
		for _, k := range r.Types {
			rule.Types = append(rule.Types, string(k))
		}
		if r.Format != nil {
			rule.Format = r.Format.String()
		}
		spec.Rules[i] = rule
	}
	return spec
}

// WriteSpecs renders specs in the named format.
func WriteSpecs(w io.Writer, format string, specs []Spec) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(specs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(specs); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeSpecsText(w, specs)
	}
	return errors.ValidateOutputFormat(format, Formats()...)
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleField = lipgloss.NewStyle().Width(22)
	styleTypes = lipgloss.NewStyle().Width(28).Foreground(colorGray)
	stylePrio  = map[string]lipgloss.Style{
		"required":    lipgloss.NewStyle().Foreground(colorRed),
		"warning":     lipgloss.NewStyle().Foreground(colorYellow),
		"recommended": lipgloss.NewStyle().Foreground(colorGray),
		"optional":    lipgloss.NewStyle().Foreground(colorDim),
	}
)

func writeSpecsText(w io.Writer, specs []Spec) error {
	var b strings.Builder
	for i, s := range specs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintln(&b, styleTitle.Render(s.Name))
		for _, r := range s.Rules {
			types := strings.Join(r.Types, " | ")
			if types == "" {
				types = "any"
			}
			prio := stylePrio[r.Priority].Render(r.Priority)
			if r.Or != "" {
				prio += styleDim.Render(" (or " + r.Or + ")")
			}
			fmt.Fprintf(&b, "  %s%s%s\n", styleField.Render(r.Field), styleTypes.Render(types), prio)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
