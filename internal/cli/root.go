package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/harmonia/config"
	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/recommend"
)

// options carries the persistent flags and the state resolved from them
// before any subcommand runs
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	json       bool

	cfg    *config.Config
	logger logging.Logger
	styles styles
}

// NewRootCmd builds the harmonia command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "harmonia",
		Short: "Next-chord recommendations from music theory",
		Long: `harmonia suggests what chord to play next.

Given a key, a mode and the chord currently sounding, it ranks diatonic
moves, secondary and double dominants, borrowed chords and substitutions.
It can also spell scales and chords and analyze degree progressions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&opts.json, "json", false, "print results as JSON")

	cmd.AddCommand(
		newRecommendCmd(opts),
		newScaleCmd(opts),
		newChordCmd(opts),
		newAnalyzeCmd(opts),
		newProgressionsCmd(opts),
		newMatrixCmd(opts),
		newKeyCmd(opts),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logging.Fatal(err, "command failed")
		// NoOpLogger does not exit
		os.Exit(1)
	}
}

// setup loads .env and the config file, applies flag overrides and installs
// the logger
func (o *options) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	var logger logging.Logger
	switch cfg.Logging.Format {
	case config.FormatJSON:
		logger = logging.NewZapJSONLogger(cmd.ErrOrStderr(), level)
	default:
		logger = logging.NewDefaultLoggerTo(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	}
	logging.SetGlobalLogger(logger)
	logging.SetLevel(level)
	if cfg.Output.Color && logging.IsTerminal(cmd.ErrOrStderr()) {
		logging.EnableColors()
	} else {
		logging.DisableColors()
	}

	ctx := logging.ContextWithFields(cmd.Context(), logging.Fields{"command": cmd.Name()})
	cmd.SetContext(ctx)

	o.cfg = cfg
	o.logger = logging.WithContext(ctx)
	o.styles = newStyles(cfg.Output.Color)

	o.logger.Debug("configuration loaded", logging.Fields{
		"config": o.configPath,
		"key":    cfg.Engine.DefaultKey,
		"mode":   cfg.Engine.DefaultMode,
	})

	return nil
}

func (o *options) newEngine() *recommend.Engine {
	return recommend.New(
		recommend.WithConfig(o.cfg.Engine),
		recommend.WithLogger(o.logger),
	)
}
