package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/formkit/internal/suggest"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "FORMKIT"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyLogLevel       = "log_level"
	cfgKeySourceDir      = "suggest.base_dir"
	cfgKeyHTTPTimeout    = "suggest.http_timeout"
	cfgKeyUserAgent      = "suggest.user_agent"
	cfgKeyCacheSize      = "suggest.cache_size"
	cfgKeyRedisAddr      = "suggest.redis_addr"
	cfgKeyRedisDB        = "suggest.redis_db"
	cfgKeySuggestTimeout = "suggest.timeout"
)

// loadConfig reads config.yaml from configDir with defaults applied.
// Environment variables FORMKIT_<KEY> override file values, with dots in
// keys written as underscores. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyHTTPTimeout, suggest.DefaultHTTPTimeout)
	v.SetDefault(cfgKeyUserAgent, suggest.DefaultUserAgent)
	v.SetDefault(cfgKeyCacheSize, suggest.DefaultCacheSize)
	v.SetDefault(cfgKeyRedisDB, 0)
	v.SetDefault(cfgKeySuggestTimeout, 5*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{cfgKeyDataDir, cfgKeySourceDir, cfgKeyRedisAddr} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
