package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/formkit/internal/sqlite"
	"github.com/mesh-intelligence/formkit/internal/suggest"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string        `yaml:"backend"`
	DataDir  string        `yaml:"data_dir,omitempty"`
	LogLevel string        `yaml:"log_level"`
	Suggest  suggestConfig `yaml:"suggest"`
}

type suggestConfig struct {
	BaseDir     string `yaml:"base_dir,omitempty"`
	HTTPTimeout string `yaml:"http_timeout"`
	UserAgent   string `yaml:"user_agent"`
	CacheSize   int    `yaml:"cache_size"`
	RedisAddr   string `yaml:"redis_addr,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Create the configuration and data directories, write a default\nconfig.yaml if none exists, then initialize the form store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	dataDir, err := a.dataDir()
	if err != nil {
		return sysErr("resolve data dir: %w", err)
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysErr("create config directory: %w", err)
	}
	configPath := filepath.Join(a.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, dataDir)
	if err != nil {
		return sysErr("write config: %w", err)
	}
	if written {
		a.log.Info("config written", "path", configPath)
	}

	store := sqlite.NewStore(sqlite.WithLogger(a.log))
	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return sysErr("initialize storage: %w", err)
	}
	if err := store.Detach(); err != nil {
		return sysErr("finalize storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "formkit initialized\nconfig: %s\ndata:   %s\n", configPath, dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values unless the
// file exists. It reports whether it wrote the file.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LogLevel: "warn",
		Suggest: suggestConfig{
			HTTPTimeout: suggest.DefaultHTTPTimeout.String(),
			UserAgent:   suggest.DefaultUserAgent,
			CacheSize:   suggest.DefaultCacheSize,
		},
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
