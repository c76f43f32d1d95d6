package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-04-18T09:00:00Z"},
		},
	}

	got := fill(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi)
	want := Info{Version: "v1.4.0", Commit: "abc123", Date: "2026-04-18T09:00:00Z"}
	if got != want {
		t.Errorf("fill() = %+v, want %+v", got, want)
	}

	// Values set via ldflags win.
	set := Info{Version: "v2.0.0", Commit: "def456", Date: "yesterday"}
	if got := fill(set, bi); got != set {
		t.Errorf("fill() = %+v, want ldflags values %+v", got, set)
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	if got := fill(Info{Version: "dev"}, devel); got.Version != "dev" {
		t.Errorf("fill() version = %q for a devel build, want dev", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
