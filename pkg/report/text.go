package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/runner"
)

var (
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	stylePath        = lipgloss.NewStyle().Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// TextOptions adjusts text output.
type TextOptions struct {
	// Quiet suppresses output for valid files.
	Quiet bool
}

// WriteText writes one block per file: a status line followed by indented
// errors, warnings and recommendations.
func WriteText(w io.Writer, results []runner.FileResult, opts TextOptions) error {
	var b strings.Builder
	for _, fr := range results {
		if opts.Quiet && fr.OK() {
			continue
		}
		writeFile(&b, fr)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFile(b *strings.Builder, fr runner.FileResult) {
	path := stylePath.Render(fr.Path)
	switch {
	case fr.Missing:
		line(b, styleIconError.Render(iconError), "File does not exist: "+path)
		return
	case fr.Err != nil:
		line(b, styleIconError.Render(iconError), path+": "+errors.UserMessage(fr.Err))
		return
	case fr.Result == nil:
		return
	}

	res := fr.Result
	suffix := ""
	if fr.Cached {
		suffix = " " + styleDim.Render("(cached)")
	}

	if res.Critical != nil {
		line(b, styleIconError.Render(iconError), path+" is NOT valid"+suffix)
		detail(b, styleIconError.Render(iconError), res.Critical.String())
		return
	}
	if res.Valid {
		line(b, styleIconSuccess.Render(iconSuccess), path+" is valid"+suffix)
	} else {
		line(b, styleIconError.Render(iconError), path+" is NOT valid"+suffix)
	}
	for _, e := range res.Errors {
		detail(b, styleIconError.Render(iconError), e)
	}
	for _, w := range res.Warnings {
		detail(b, styleIconWarning.Render(iconWarning), styleWarning.Render(w))
	}
	for _, r := range res.Recommendations {
		detail(b, styleIconInfo.Render(iconInfo), styleDim.Render(r))
	}
}

func line(b *strings.Builder, icon, msg string) {
	fmt.Fprintf(b, "%s %s\n", icon, msg)
}

func detail(b *strings.Builder, icon, msg string) {
	fmt.Fprintf(b, "  %s %s\n", icon, msg)
}

// Summary returns a one-line count such as "3 files: 2 valid, 1 invalid".
func Summary(results []runner.FileResult) string {
	var valid, invalid, missing int
	for _, fr := range results {
		switch {
		case fr.OK():
			valid++
		case fr.Missing:
			missing++
		default:
			invalid++
		}
	}
	noun := "files"
	if len(results) == 1 {
		noun = "file"
	}
	s := fmt.Sprintf("%d %s: %d valid, %d invalid", len(results), noun, valid, invalid)
	if missing > 0 {
		s += fmt.Sprintf(", %d missing", missing)
	}
	return s
}
