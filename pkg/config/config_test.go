package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pjv/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pjv.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
spec = "commonjs_1.1"
warnings = true
recommendations = true
format = "yaml"
concurrency = 8

[cache]
enabled = true
dir = "/tmp/pjv-cache"
ttl = "1h"

[server]
addr = "127.0.0.1:9000"
max_body_bytes = 2048
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Spec = "commonjs_1.1"
	want.Warnings = true
	want.Recommendations = true
	want.Format = "yaml"
	want.Concurrency = 8
	want.Cache = CacheConfig{Enabled: true, Dir: "/tmp/pjv-cache", TTL: Duration{time.Hour}}
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.MaxBodyBytes = 2048

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`format = "json"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Format != "json" {
		t.Errorf("Format = %q, want json", got.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `spec = `, errors.ErrCodeInvalidInput},
		{"unknown key", `colour = "blue"`, errors.ErrCodeInvalidInput},
		{"unknown spec", `spec = "yarn"`, errors.ErrCodeInvalidSpec},
		{"unknown format", `format = "xml"`, errors.ErrCodeInvalidFormat},
		{"zero concurrency", `concurrency = 0`, errors.ErrCodeInvalidInput},
		{"bad ttl", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidInput},
		{"empty addr", "[server]\naddr = \"\"", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PJV_SPEC", "commonjs_1.0")
	t.Setenv("PJV_FORMAT", "json")
	t.Setenv("PJV_CONCURRENCY", "2")
	t.Setenv("PJV_CACHE", "true")
	t.Setenv("PJV_CACHE_DIR", "/var/cache/pjv")
	t.Setenv("PJV_SERVER_ADDR", ":9999")

	got, err := Load(writeConfig(t, `spec = "npm"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Spec != "commonjs_1.0" || got.Format != "json" || got.Concurrency != 2 {
		t.Errorf("env overrides not applied: %+v", got)
	}
	if !got.Cache.Enabled || got.Cache.Dir != "/var/cache/pjv" {
		t.Errorf("cache overrides not applied: %+v", got.Cache)
	}
	if got.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", got.Server.Addr)
	}
}

func TestEnvOverrideUnparsableIgnored(t *testing.T) {
	t.Setenv("PJV_CONCURRENCY", "many")

	got, err := Load(writeConfig(t, `concurrency = 3`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want 3", got.Concurrency)
	}
}

func TestEnvOverrideInvalidSpecRejected(t *testing.T) {
	t.Setenv("PJV_SPEC", "yarn")
	if _, err := Load(writeConfig(t, ``)); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("Load error = %v, want INVALID_SPEC", err)
	}
}
