package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/pipeline"
)

// layoutFlags are the flags shared by every command that lays out an event.
type layoutFlags struct {
	days           []string
	extensionHours int
	noCache        bool
	refresh        bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.days, "days", nil, "lay out only these days, in this order (default all)")
	fs.IntVar(&f.extensionHours, "extension-hours", pipeline.DefaultExtensionHours, "hours shown after each day's end unless the event overrides it")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// apply copies the flags into opts. The extension is only set when given
// on the command line so the pipeline default stays in one place.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	opts.Days = f.days
	opts.Refresh = f.refresh
	if cmd.Flags().Changed("extension-hours") {
		ext := f.extensionHours
		opts.ExtensionHours = &ext
	}
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout <event-file|event-id>",
		Short: "Lay out an event and write the board as JSON",
		Long: `Lay out every table of an event into lanes and write the resulting board
as JSON. The board can be rendered later with "signupboard render".

The argument is either a TOML or JSON event file or the id of a stored event.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, lf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, err := resolveInput(ctx, runner, args[0])
			if err != nil {
				return err
			}
			if in.Event == nil {
				return fmt.Errorf("%s is already a board", args[0])
			}

			var opts pipeline.Options
			lf.apply(cmd, &opts)

			prog := newProgress(c.Logger)
			b, hit, err := runner.BuildWithCacheInfo(ctx, in.Event, opts)
			if err != nil {
				return err
			}
			prog.done("Laid out " + b.EventID)

			if output == "" || output == "-" {
				data, err := board.Marshal(b)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := board.WriteFile(b, output); err != nil {
				return err
			}
			printSuccess("Laid out %s", StyleHighlight.Render(b.EventID))
			printStats(b.Counts(), hit)
			printFile(output)
			printNextStep("Render it", "signupboard render "+output)
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
