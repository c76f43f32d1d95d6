package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/pipeline"
	"github.com/matzehuels/signupboard/pkg/server"
)

// serveFlags are the settings of the serve command.
type serveFlags struct {
	bind           string
	port           int
	extensionHours int
	noCache        bool
}

func (f serveFlags) validate() error {
	if f.port < 1 || f.port > 65535 {
		return errors.New(errors.ErrCodeConfiguration, "invalid port (must be between 1-65535 inclusive): %d", f.port)
	}
	if f.extensionHours < 0 {
		return errors.New(errors.ErrCodeConfiguration, "extension hours cannot be negative: %d", f.extensionHours)
	}
	return nil
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var sf serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Long: `Run the HTTP API: event CRUD, board rendering, game signups, QR codes
and live roster updates over WebSocket.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return sf.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ext := sf.extensionHours
			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithDefaults(pipeline.Options{ExtensionHours: &ext}),
			)
			return srv.ListenAndServe(ctx, sf.bind, sf.port)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&sf.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SIGNUPBOARD_BIND)")
	fs.IntVarP(&sf.port, "port", "p", 8080, "port to listen on (env: SIGNUPBOARD_PORT)")
	fs.IntVar(&sf.extensionHours, "extension-hours", pipeline.DefaultExtensionHours, "hours shown after each day's end unless the event overrides it (env: SIGNUPBOARD_EXTENSION_HOURS)")
	fs.BoolVar(&sf.noCache, "no-cache", false, "disable the render cache (env: SIGNUPBOARD_NO_CACHE)")
	return cmd
}
