package cli

import (
	"testing"

	"github.com/matzehuels/gridsep/pkg/buildinfo"
)

func TestSetVersion(t *testing.T) {
	saved := buildinfo.Get()
	defer func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = saved.Version, saved.Commit, saved.Date
	}()

	SetVersion("1.0.0", "abc123", "2024-01-01")

	got := buildinfo.Get()
	if got.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", got.Version, "1.0.0")
	}
	if got.Commit != "abc123" {
		t.Errorf("Commit = %q, want %q", got.Commit, "abc123")
	}
	if got.Date != "2024-01-01" {
		t.Errorf("Date = %q, want %q", got.Date, "2024-01-01")
	}
}

func TestSetVersionEmpty(t *testing.T) {
	saved := buildinfo.Get()
	defer func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = saved.Version, saved.Commit, saved.Date
	}()

	buildinfo.Version = "v2"
	SetVersion("", "", "")

	if buildinfo.Version != "v2" {
		t.Errorf("empty SetVersion overwrote Version: %q", buildinfo.Version)
	}
}
