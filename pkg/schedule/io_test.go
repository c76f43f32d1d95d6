package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/signupboard/pkg/errors"
)

const sampleTOML = `
id = "boardgame-night"
name = "Board Game Night"
extension_hours = 1

[[days]]
id = "fri"
label = "Friday"
start = "18:00"
end = "23:00"

[[tables]]
id = "t1"
name = "Big Table"

[[games]]
id = "catan"
name = "Catan"
table = "t1"
day = "fri"
start = "18:30"
duration = 90
max_players = 4
players = ["ann", "bob"]
`

func TestReadTOML(t *testing.T) {
	ev, err := Read(strings.NewReader(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ev.ExtensionHours == nil || *ev.ExtensionHours != 1 {
		t.Errorf("ExtensionHours = %v, want 1", ev.ExtensionHours)
	}
	g, ok := ev.Game("catan")
	if !ok {
		t.Fatal("game catan missing")
	}
	if g.Start != "18:30" || g.Duration != 90 || len(g.Players) != 2 {
		t.Errorf("catan = %+v", g)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"event.json", "event.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, sampleEvent()); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			ev, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if len(ev.Games) != len(sampleEvent().Games) {
				t.Errorf("got %d games, want %d", len(ev.Games), len(sampleEvent().Games))
			}
			if g, _ := ev.Game("gone"); g == nil || !g.Deleted {
				t.Error("deleted flag lost")
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad json error = %v, want INVALID_FORMAT", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"id":"x","games":[{"id":"g","day":"nope","table":"t"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(invalid); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("dangling reference error = %v, want INVALID_INPUT", err)
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	if _, err := Read(strings.NewReader("{}"), Format("yaml")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Read(yaml) error = %v, want UNSUPPORTED", err)
	}
}

func TestFormatForPath(t *testing.T) {
	if FormatForPath("a/b/event.TOML") != FormatTOML {
		t.Error("expected toml for .TOML")
	}
	if FormatForPath("event.json") != FormatJSON || FormatForPath("event") != FormatJSON {
		t.Error("expected json default")
	}
}
