package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/signupboard/pkg/errors"
)

// Config holds the settings shared by every command.
//
// Each field is a persistent flag. A flag left unset on the command line
// falls back to the SIGNUPBOARD_* environment variable of the same name
// (dashes become underscores), then to the --config file, then to the
// flag default.
type Config struct {
	ConfigFile    string
	Verbose       bool
	Store         string
	StorePath     string
	MongoURI      string
	MongoDatabase string
	Cache         string
	RedisAddr     string
}

func (c *CLI) registerPersistentFlags(root *cobra.Command) {
	fs := root.PersistentFlags()
	fs.SetNormalizeFunc(normalizeFlag)

	fs.StringVar(&c.cfg.ConfigFile, "config", "", "read settings from a TOML, YAML or JSON file (env: SIGNUPBOARD_CONFIG)")
	fs.BoolVarP(&c.cfg.Verbose, "verbose", "v", false, "enable verbose logging (env: SIGNUPBOARD_VERBOSE)")
	fs.StringVar(&c.cfg.Store, "store", "file", "event store: file, mongo or memory (env: SIGNUPBOARD_STORE)")
	fs.StringVar(&c.cfg.StorePath, "store-path", "", "directory of the file store (default ~/.config/signupboard/events) (env: SIGNUPBOARD_STORE_PATH)")
	fs.StringVar(&c.cfg.MongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string (env: SIGNUPBOARD_MONGO_URI)")
	fs.StringVar(&c.cfg.MongoDatabase, "mongo-database", appName, "MongoDB database name (env: SIGNUPBOARD_MONGO_DATABASE)")
	fs.StringVar(&c.cfg.Cache, "cache", cacheFile, "cache backend: file, redis or none (env: SIGNUPBOARD_CACHE)")
	fs.StringVar(&c.cfg.RedisAddr, "redis-addr", "localhost:6379", "Redis address or redis:// URL (env: SIGNUPBOARD_REDIS_ADDR)")
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// loadConfig fills every flag of cmd that was not set on the command line
// from the environment or the config file.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	v := newViper()
	fs := cmd.Flags()

	// The config file location itself may only come from the flag or env.
	if f := fs.Lookup("config"); f != nil {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
		}
		c.Logger.Debug("loaded config", "path", v.ConfigFileUsed())
	}

	return applyViper(v, fs)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// applyViper copies values known to v into the flags of fs that were not
// changed on the command line.
func applyViper(v *viper.Viper, fs *pflag.FlagSet) error {
	var firstErr error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil && firstErr == nil {
			firstErr = errors.Wrap(errors.ErrCodeConfiguration, err, "invalid value for --%s", f.Name)
		}
	})
	return firstErr
}
