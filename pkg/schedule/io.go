package schedule

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/signupboard/pkg/errors"
)

// Format is an event document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .toml is treated as JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Read decodes an event from r.
func Read(r io.Reader, f Format) (*Event, error) {
	var ev Event
	switch f {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&ev); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json event")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&ev); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml event")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported event format %q", f)
	}
	return &ev, nil
}

// Write encodes ev to w.
func Write(w io.Writer, ev *Event, f Format) error {
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ev); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json event")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(ev); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml event")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported event format %q", f)
	}
	return nil
}

// ReadFile reads and validates an event document. The encoding is chosen
// from the file extension.
func ReadFile(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	ev, err := Read(bytes.NewReader(data), FormatForPath(path))
	if err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// WriteFile writes an event document to path.
func WriteFile(path string, ev *Event) error {
	var buf bytes.Buffer
	if err := Write(&buf, ev, FormatForPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
