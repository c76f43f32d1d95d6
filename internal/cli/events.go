package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
	"github.com/matzehuels/signupboard/pkg/schedule/store"
)

// eventsCommand creates the event store management command.
func (c *CLI) eventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage stored events",
	}

	cmd.AddCommand(c.eventsListCommand())
	cmd.AddCommand(c.eventsShowCommand())
	cmd.AddCommand(c.eventsImportCommand())
	cmd.AddCommand(c.eventsDeleteCommand())

	return cmd
}

func (c *CLI) eventsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			events, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				printInfo("No events stored")
				return nil
			}
			for _, s := range events {
				printKeyValue(s.ID, summaryLine(s))
			}
			return nil
		},
	}
}

func summaryLine(s store.Summary) string {
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s  %s · %s · %s",
		name, strings.Join(s.Days, ","), plural(s.Tables, "table"), plural(s.Games, "game"))
}

func (c *CLI) eventsShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Print a stored event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := schedule.Format(strings.ToLower(format))
			if f != schedule.FormatTOML && f != schedule.FormatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be toml or json)", format)
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			ev, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return schedule.Write(cmd.OutOrStdout(), ev, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(schedule.FormatTOML), "output encoding: toml or json")
	return cmd
}

func (c *CLI) eventsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <event-file>...",
		Short: "Store events read from TOML or JSON files",
		Long: `Read each event file and store it, replacing a stored event with the same id.
Games without an id get one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			for _, path := range args {
				ev, err := schedule.ReadFile(path)
				if err != nil {
					return err
				}
				if err := st.Put(cmd.Context(), ev); err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				printSuccess("Imported %s", StyleHighlight.Render(ev.ID))
				printDetail("%s", summaryLine(store.Summarize(ev)))
			}
			return nil
		},
	}
}

func (c *CLI) eventsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete a stored event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
