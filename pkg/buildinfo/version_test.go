package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}} version " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}

func TestCacheScope(t *testing.T) {
	orig, origCommit := Version, Commit
	defer func() { Version, Commit = orig, origCommit }()

	Version, Commit = "v1.2.0", "abc"
	if got := CacheScope(); got != "v1.2.0:" {
		t.Errorf("CacheScope() = %q, want v1.2.0:", got)
	}

	Version = "dev"
	if got := CacheScope(); got != "dev-abc:" {
		t.Errorf("CacheScope() = %q, want dev-abc:", got)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v", info)
	}
}
