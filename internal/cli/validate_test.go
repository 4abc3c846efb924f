package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/report"
)

const validManifest = `{
  "name": "demo",
  "version": "1.0.0",
  "description": "A demo package",
  "keywords": ["demo"],
  "homepage": "http://example.com",
  "bugs": "http://example.com/issues",
  "author": "Jane Doe <jane@example.com>",
  "contributors": ["John Roe"],
  "repository": {"type": "git", "url": "https://example.com/demo.git"},
  "licenses": [{"type": "MIT", "url": "http://opensource.org/licenses/MIT"}],
  "dependencies": {"express": "^4.18.0"}
}`

// execute runs the root command with args and returns what was written to
// stdout and stderr.
func execute(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(&stdout, &stderr, log.InfoLevel)
	if stdin != nil {
		c.stdin = bytes.NewReader(stdin)
	}
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestValidateDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", validManifest)

	for _, args := range [][]string{nil, {"validate"}} {
		stdout, _, err := execute(t, nil, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.Contains(stdout, "package.json is valid") {
			t.Errorf("%v: stdout = %q", args, stdout)
		}
	}
}

func TestValidateMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, stderr, err := execute(t, nil, "validate", "nope.json")
	if !stderrors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "File does not exist: nope.json") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestValidateInvalidFile(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "bad.json", `{"name":"demo","version":"1.0.0","dependencies":{"abc123":"abc123"}}`)
	writeFile(t, "good.json", validManifest)

	stdout, stderr, err := execute(t, nil, "good.json", "bad.json")
	if !stderrors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(stdout, "good.json is valid") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.Contains(stdout, "bad.json") {
		t.Errorf("invalid file reported on stdout: %q", stdout)
	}
	for _, want := range []string{
		"bad.json is NOT valid",
		"Invalid version range for dependency abc123: abc123",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestValidateAdvisoryFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", `{"name":"demo","version":"1.0.0"}`)

	stdout, _, err := execute(t, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "Missing recommended field") {
		t.Errorf("warnings shown without -w: %q", stdout)
	}

	stdout, _, err = execute(t, nil, "-w", "-r")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Missing recommended field: description",
		"Missing optional field: dependencies",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidateQuiet(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", validManifest)
	writeFile(t, "bad.json", `{"name":"demo"}`)

	stdout, _, err := execute(t, nil, "-q")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	for _, format := range []string{"json", "yaml"} {
		stdout, _, err := execute(t, nil, "-q", "-o", format, "package.json", "bad.json")
		if !stderrors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", format, err)
		}
		var files []report.File
		if err := yaml.Unmarshal([]byte(stdout), &files); err != nil {
			t.Fatalf("%s: decode %q: %v", format, stdout, err)
		}
		if len(files) != 1 || files[0].Path != "bad.json" {
			t.Errorf("%s: quiet output = %+v, want only bad.json", format, files)
		}
	}
}

func TestValidateStdinJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, stderr, err := execute(t, []byte(`[1,2]`), "validate", "-o", "json", "-")
	if !stderrors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(stderr, "stdin is NOT valid") {
		t.Errorf("stderr = %q", stderr)
	}

	var got []report.File
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(got) != 1 || got[0].Path != "stdin" || got[0].Critical == nil {
		t.Fatalf("got %+v", got)
	}
	if diff := cmp.Diff("Invalid JSON - not an object (actual type: array)", got[0].Critical.String()); diff != "" {
		t.Errorf("critical mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSpecFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", `{"name":"demo","version":"1.0.0"}`)

	_, stderr, err := execute(t, nil, "-s", "commonjs_1.0")
	if !stderrors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(stderr, "Missing required field: description") {
		t.Errorf("stderr = %q", stderr)
	}

	_, _, err = execute(t, nil, "-s", "yarn")
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("err = %v, want INVALID_SPEC", err)
	}
}

func TestValidateBadFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"-o", "xml"}, errors.ErrCodeInvalidFormat},
		{[]string{"--concurrency", "0"}, errors.ErrCodeInvalidInput},
		{[]string{"--config", "missing.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		_, _, err := execute(t, nil, tt.args...)
		if !errors.Is(err, tt.code) {
			t.Errorf("%v: err = %v, want %s", tt.args, err, tt.code)
		}
	}
}

func TestValidateConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", `{"name":"demo","version":"1.0.0"}`)
	writeFile(t, ".pjv.toml", "warnings = true\nformat = \"yaml\"\n")

	stdout, _, err := execute(t, nil)
	if err != nil {
		t.Fatal(err)
	}
	var files []report.File
	if err := yaml.Unmarshal([]byte(stdout), &files); err != nil {
		t.Fatalf("decode yaml %q: %v", stdout, err)
	}
	if len(files) != 1 || !files[0].Valid {
		t.Fatalf("got %+v", files)
	}
	if !slices.Contains(files[0].Warnings, "Missing recommended field: description") {
		t.Errorf("yaml output missing warnings: %v", files[0].Warnings)
	}

	// Explicit flags win over the file.
	stdout, _, err = execute(t, nil, "-o", "text", "--warnings=false")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "Missing recommended field") || !strings.Contains(stdout, "is valid") {
		t.Errorf("flags did not override config:\n%s", stdout)
	}
}

func TestValidateCached(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PJV_CACHE_DIR", t.TempDir())
	writeFile(t, "package.json", validManifest)

	if _, _, err := execute(t, nil, "--cache"); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := execute(t, nil, "--cache")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "(cached)") {
		t.Errorf("second run not served from cache:\n%s", stdout)
	}
}

func TestValidateWatchRejectsStdin(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, []byte(`{}`), "--watch", "-")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestSpecsCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := execute(t, nil, "specs", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var specs []report.Spec
	if err := json.Unmarshal([]byte(stdout), &specs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"npm", "commonjs_1.0", "commonjs_1.1"}, names); diff != "" {
		t.Errorf("spec names mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := execute(t, nil, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "dev") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestFlagValueCompletion(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"__complete", "validate", "--spec", ""}, []string{"npm", "commonjs_1.0", "commonjs_1.1"}},
		{[]string{"__complete", "--output", ""}, []string{"text", "json", "yaml"}},
		{[]string{"__complete", "specs", "-o", ""}, []string{"text", "json", "yaml"}},
	}
	for _, tt := range tests {
		stdout, _, err := execute(t, nil, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		// The last line is the ":<directive>" trailer.
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		if diff := cmp.Diff(tt.want, lines[:len(lines)-1]); diff != "" {
			t.Errorf("%v completions mismatch (-want +got):\n%s", tt.args, diff)
		}
	}
}

func TestCompletionScript(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := execute(t, nil, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "__start_pjv") {
		t.Errorf("bash completion does not define __start_pjv")
	}
}
