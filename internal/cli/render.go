package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf         layoutFlags
		formats    string
		output     string
		day        string
		highlight  string
		laneHeight int
		width      int
	)

	cmd := &cobra.Command{
		Use:   "render <event-file|board.json|event-id>",
		Short: "Render a signup board",
		Long: `Render a signup board as a lane chart (svg, png, pdf), as board JSON, or as
the Graphviz graph of overlapping games on one day (dot, conflicts).

The argument is a TOML or JSON event file, a board written by
"signupboard layout", or the id of a stored event. PNG and PDF output
needs rsvg-convert on the PATH.`,
		Example: `  signupboard render spring-con.toml
  signupboard render spring-con -f svg,png -o boards/spring
  signupboard render board.json -f conflicts --day sat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{
				Formats:    pipeline.ParseFormats(formats),
				Day:        day,
				Highlight:  highlight,
				LaneHeight: laneHeight,
				Width:      width,
			}
			lf.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, lf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, err := resolveInput(ctx, runner, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			sp := newSpinnerWithContext(ctx, "Rendering "+in.Name()+"...")
			sp.Start()
			b, artifacts, cached, err := renderInput(ctx, runner, in, opts)
			sp.Stop()
			if err != nil {
				return err
			}
			prog.done("Rendered " + in.Name())

			paths, err := writeArtifacts(outputBase(output, in.Name(), opts.Formats), output, opts.Formats, artifacts)
			if err != nil {
				return err
			}

			printSuccess("Rendered %s", StyleHighlight.Render(in.Name()))
			printStats(b.Counts(), cached)
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	lf.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&formats, "format", "f", pipeline.FormatSVG, "comma-separated output formats: svg, png, pdf, json, dot, conflicts")
	fs.StringVarP(&output, "output", "o", "", "output file, or base name when rendering several formats (default <event-id>)")
	fs.StringVar(&day, "day", "", "render only this day (dot and conflicts default to the first day with a schedule)")
	fs.StringVar(&highlight, "highlight", "", "game id to emphasize")
	fs.IntVar(&laneHeight, "lane-height", pipeline.DefaultLaneHeight, "height of one lane in pixels")
	fs.IntVar(&width, "width", pipeline.DefaultWidth, "width of the timeline area in pixels")
	return cmd
}

// renderInput lays out and renders an event, or renders a board that was
// laid out before.
func renderInput(ctx context.Context, runner *pipeline.Runner, in input, opts pipeline.Options) (board.Board, map[string][]byte, bool, error) {
	if in.Board != nil {
		artifacts, cached, err := runner.RenderWithCacheInfo(ctx, *in.Board, opts)
		return *in.Board, artifacts, cached, err
	}
	result, err := runner.ExecuteEvent(ctx, in.Event, opts)
	if err != nil {
		return board.Board{}, nil, false, err
	}
	cached := result.CacheInfo.BoardHit && result.CacheInfo.RenderHit
	return result.Board, result.Artifacts, cached, nil
}

// outputBase returns the path artifacts are written to, without extension.
func outputBase(output, name string, formats []string) string {
	if output == "" {
		return name
	}
	if len(formats) == 1 {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output))
}

// writeArtifacts writes each format to base plus the format's extension.
// A single format with an explicit output path is written to that path
// unchanged.
func writeArtifacts(base, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s output was rendered", f)
		}
		path := base + "." + pipeline.FileExtension(f)
		if output != "" && len(formats) == 1 {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
