package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version, Commit, Date = "v0.3.0", "abc123", "2026-01-02T03:04:05Z"

	got := String()
	for _, want := range []string{"version: v0.3.0", "commit: abc123", "built: 2026-01-02T03:04:05Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v0.3.0") {
		t.Errorf("Template() = %q", Template())
	}
}
