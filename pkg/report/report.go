// Package report renders validation results as text, JSON or YAML.
//
// JSON and YAML share one document shape, a list of files:
//
//	- path: package.json
//	  valid: false
//	  errors:
//	    - 'Missing required field: version'
//
// Text output is meant for terminals and is styled with lipgloss; styles
// degrade to plain text when the writer is not a TTY.
package report

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/runner"
	"github.com/matzehuels/pjv/pkg/validator"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats returns the supported output format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// File is the serialized form of one runner.FileResult.
type File struct {
	Path            string              `json:"path" yaml:"path"`
	Missing         bool                `json:"missing,omitempty" yaml:"missing,omitempty"`
	Error           string              `json:"error,omitempty" yaml:"error,omitempty"`
	Cached          bool                `json:"cached,omitempty" yaml:"cached,omitempty"`
	Valid           bool                `json:"valid" yaml:"valid"`
	Errors          []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings        []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Critical        *validator.Critical `json:"critical,omitempty" yaml:"critical,omitempty"`
}

// NewFile converts a runner result.
func NewFile(fr runner.FileResult) File {
	f := File{Path: fr.Path, Missing: fr.Missing, Cached: fr.Cached}
	if fr.Err != nil {
		f.Error = errors.UserMessage(fr.Err)
	}
	if res := fr.Result; res != nil {
		f.Valid = res.Valid
		f.Errors = res.Errors
		f.Warnings = res.Warnings
		f.Recommendations = res.Recommendations
		f.Critical = res.Critical
	}
	return f
}

// Write renders results in the named format.
func Write(w io.Writer, format string, results []runner.FileResult, opts TextOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	case FormatText, "":
		return WriteText(w, results, opts)
	}
	return errors.ValidateOutputFormat(format, Formats()...)
}

func files(results []runner.FileResult) []File {
	out := make([]File, len(results))
	for i, r := range results {
		out[i] = NewFile(r)
	}
	return out
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []runner.FileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(files(results))
}

// WriteYAML writes results as a YAML sequence.
func WriteYAML(w io.Writer, results []runner.FileResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(files(results)); err != nil {
		return err
	}
	return enc.Close()
}
