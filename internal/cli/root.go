// Package cli implements the formkit command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/formkit/internal/behavior"
	"github.com/mesh-intelligence/formkit/internal/paths"
	"github.com/mesh-intelligence/formkit/pkg/formkit"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       *slog.Logger
	behaviors *behavior.Extender
}

// NewRootCmd creates the top-level "formkit" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:     "formkit",
		Short:   "Validate form data and serve field suggestions",
		Long:    "formkit validates form data against declarative field definitions,\nserves autocomplete suggestions and keeps saved form records.",
		Version: formkit.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newSuggestCmd(a))
	root.AddCommand(newBehaviorsCmd(a))
	root.AddCommand(newDataCmd(a))
	root.AddCommand(newSchemaCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "formkit:", err)
		var sys *systemError
		if errors.As(err, &sys) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// systemError marks failures of the environment (storage, network) rather
// than of the user's input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return &systemError{err: fmt.Errorf(format, args...)}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr("%w", err)
	}
	if a.flags.logLevel != "" {
		cfg.Set(cfgKeyLogLevel, a.flags.logLevel)
	}
	level, err := parseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}

	a.configDir = configDir
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), level)
	a.log.Debug("config loaded", "config_dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// dataDir returns the data directory: --data-dir > config data_dir >
// FORMKIT_DATA_DIR > $(CWD)/.formkit-db.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
}
