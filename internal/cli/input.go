package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/pipeline"
	"github.com/matzehuels/signupboard/pkg/schedule"
)

// input is what a command argument resolved to: an event to lay out, or a
// board that was laid out before.
type input struct {
	Event  *schedule.Event
	Board  *board.Board
	Source string
}

// Name returns the id used for default output file names.
func (in input) Name() string {
	if in.Board != nil {
		return in.Board.EventID
	}
	return in.Event.ID
}

// resolveInput interprets arg as an event file, a board JSON file written
// by "layout" or "render -f json", or the id of a stored event, in that order.
func resolveInput(ctx context.Context, runner *pipeline.Runner, arg string) (input, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		return readInputFile(arg)
	}
	ev, err := runner.Load(ctx, arg)
	if err != nil {
		return input{}, err
	}
	return input{Event: ev, Source: "store"}, nil
}

func readInputFile(path string) (input, error) {
	if schedule.FormatForPath(path) == schedule.FormatJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return input{}, err
		}
		if isBoardJSON(data) {
			b, err := board.Unmarshal(data)
			if err != nil {
				return input{}, fmt.Errorf("read board %s: %w", path, err)
			}
			return input{Board: &b, Source: path}, nil
		}
	}
	ev, err := schedule.ReadFile(path)
	if err != nil {
		return input{}, err
	}
	return input{Event: ev, Source: path}, nil
}

// isBoardJSON reports whether data is a JSON object with an event_id key,
// which events never have.
func isBoardJSON(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["event_id"]
	return ok
}
