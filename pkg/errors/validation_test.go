package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "package.json", false},
		{"nested", "packages/app/package.json", false},
		{"absolute", "/srv/app/package.json", false},
		{"parent", "../package.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateSpecName(t *testing.T) {
	known := []string{"npm", "commonjs_1.0", "commonjs_1.1"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"npm", false},
		{"commonjs_1.0", false},
		{"commonjs_1.1", false},
		{"", true},
		{"NPM", true},
		{"yarn", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateSpecName(tt.input, known...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpecName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSpec) {
				t.Errorf("ValidateSpecName(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	known := []string{"text", "json", "yaml"}
	for _, f := range known {
		if err := ValidateOutputFormat(f, known...); err != nil {
			t.Errorf("ValidateOutputFormat(%q) = %v", f, err)
		}
	}

	err := ValidateOutputFormat("xml", known...)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateOutputFormat(xml) = %v, want INVALID_FORMAT", err)
	}
	if want := `unknown output format "xml" (want one of: text, json, yaml)`; UserMessage(err) != want {
		t.Errorf("UserMessage = %q, want %q", UserMessage(err), want)
	}
}
