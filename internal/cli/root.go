package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wesleyorama2/runcfg/internal/config"
	"github.com/wesleyorama2/runcfg/internal/output"
	"github.com/wesleyorama2/runcfg/internal/preset"
	"github.com/wesleyorama2/runcfg/internal/transform"
)

var version = "0.1.0"

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("error already reported")

// app holds the state shared by one command tree.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

// NewRootCommand creates the root command with all subcommands attached.
// Every call returns an independent tree, so tests can run commands in isolation.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "runcfg",
		Short:   "Resolve and validate test runner configuration",
		Version: version,
		Long: `runcfg resolves a test runner configuration file against its preset,
fills in defaults and checks the result: file extensions, test match
patterns and the transform pipeline that maps source files to transformers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.v.GetBool("debug"))
			if err != nil {
				return fmt.Errorf("error creating logger: %w", err)
			}
			a.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	// Global persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is runcfg.config.{json,yaml,yml} in the current directory)")
	flags.String("presets", "", "directory searched for presets before the builtin ones")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("no-color", false, "disable colored output")

	// Environment variables: RUNCFG_CONFIG, RUNCFG_PRESETS, RUNCFG_DEBUG, RUNCFG_NO_COLOR
	a.v.SetEnvPrefix("RUNCFG")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"config", "presets", "debug", "no-color"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newDiscoverCmd(a))
	rootCmd.AddCommand(newPresetsCmd(a))
	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

// Execute runs the command line and prints any error that was not yet reported.
// This is called by main.main().
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// newLogger builds a development logger under --debug and a quiet
// console logger on stderr otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (a *app) noColor() bool {
	return a.v.GetBool("no-color") || !output.IsTerminal(os.Stdout)
}

// loadRaw reads the --config file, or the default config file of the
// current directory when none is named.
func (a *app) loadRaw() (config.Raw, string, error) {
	path := a.v.GetString("config")
	if path == "" {
		found, err := config.DiscoverFile(".")
		if err != nil {
			return config.Raw{}, "", err
		}
		path = found
	}

	a.log.Debug("loading config", zap.String("path", path))
	raw, err := config.LoadFile(path)
	if err != nil {
		return config.Raw{}, path, err
	}
	return raw, path, nil
}

func (a *app) presets() config.PresetLookup {
	var chain preset.Chain
	if dir := a.v.GetString("presets"); dir != "" {
		chain = append(chain, preset.NewDir(dir))
	}
	return append(chain, preset.Builtin())
}

func (a *app) resolver() *config.Resolver {
	return &config.Resolver{
		Presets:      a.presets(),
		Transformers: transform.Builtin(),
		Logger:       a.log,
	}
}

// resolve loads and resolves the configuration. Validation failures are
// printed to the command's error stream and reported as errReported.
func (a *app) resolve(cmd *cobra.Command) (*config.Configuration, string, error) {
	raw, path, err := a.loadRaw()
	if err != nil {
		return nil, path, a.report(cmd, err)
	}

	cfg, err := a.resolver().Resolve(raw)
	if err != nil {
		return nil, path, a.report(cmd, fmt.Errorf("%s: %w", path, err))
	}
	return cfg, path, nil
}

// report prints configuration violations, with the preset file they came
// from when there is one, and turns them into errReported.
// Other errors are returned unchanged.
func (a *app) report(cmd *cobra.Command, err error) error {
	var invalid *config.InvalidConfigurationError
	if !errors.As(err, &invalid) {
		return err
	}

	w := cmd.ErrOrStderr()
	// violations found while loading a --presets file belong to that file
	var invalidPreset *preset.InvalidPresetError
	if errors.As(err, &invalidPreset) {
		fmt.Fprintf(w, "Error: invalid preset %s (preset %q)\n", invalidPreset.Path, invalidPreset.Name)
	}
	fmt.Fprint(w, output.NewFormatter(false, a.noColor()).FormatViolations(invalid))
	return errReported
}
