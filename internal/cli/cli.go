package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/signupboard/pkg/buildinfo"
	"github.com/matzehuels/signupboard/pkg/cache"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/observability"
	"github.com/matzehuels/signupboard/pkg/pipeline"
	"github.com/matzehuels/signupboard/pkg/schedule/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "signupboard"

	// envPrefix prefixes every environment variable that sets a flag.
	envPrefix = "SIGNUPBOARD"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cfg is filled from flags, the environment and the config file
	// before any command runs.
	cfg Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Signupboard lays out game signup boards as timelines",
		Long: `Signupboard arranges the games registered on each table of an event into
non-overlapping lanes on an hour-marked timeline, and serves the result as
SVG, PNG, PDF, JSON or Graphviz output.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			c.applyVerbosity()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.registerPersistentFlags(root)

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.eventsCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// applyVerbosity sets the log level and, when verbose, logs pipeline and
// cache events through the observability hooks.
func (c *CLI) applyVerbosity() {
	if !c.cfg.Verbose {
		c.SetLogLevel(LogInfo)
		return
	}
	c.SetLogLevel(LogDebug)
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetBoardHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The caller closes it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		st.Close()
		return nil, err
	}
	return pipeline.NewRunner(st, ch, nil, c.Logger), nil
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, store.Config{
		Kind:     store.Kind(c.cfg.Store),
		Path:     c.cfg.StorePath,
		URI:      c.cfg.MongoURI,
		Database: c.cfg.MongoDatabase,
		Logger:   c.Logger,
	})
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheRedis:
		return cache.NewRedisCache(ctx, c.cfg.RedisAddr)
	case cacheFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown cache %q (want file, redis or none)", c.cfg.Cache)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/signupboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
