package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points the home and user-config lookups at fixed directories for
// the duration of the test.
func withHome(t *testing.T, home string) {
	t.Helper()
	savedHome, savedConfig := platformDir.homeDir, platformDir.userConfigDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "AppConfig"), nil }
	t.Cleanup(func() {
		platformDir.homeDir, platformDir.userConfigDir = savedHome, savedConfig
	})
}

func TestDefaultDirs(t *testing.T) {
	home := filepath.FromSlash("/home/anna")

	if runtime.GOOS != "linux" {
		withHome(t, home)
		cfg, err := DefaultConfigDir()
		require.NoError(t, err)
		data, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "AppConfig", appName), cfg)
		assert.Equal(t, cfg, data)
		return
	}

	tests := []struct {
		name       string
		xdgConfig  string
		xdgData    string
		wantConfig string
		wantData   string
	}{
		{"home fallbacks", "", "", "/home/anna/.config/formkit", "/home/anna/.local/share/formkit"},
		{"xdg overrides", "/xdg/cfg", "/xdg/data", "/xdg/cfg/formkit", "/xdg/data/formkit"},
		{"mixed", "/xdg/cfg", "", "/xdg/cfg/formkit", "/home/anna/.local/share/formkit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withHome(t, home)
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			t.Setenv("XDG_DATA_HOME", tt.xdgData)

			cfg, err := DefaultConfigDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, cfg)

			data, err := DefaultDataDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestDefaultDirsHomeError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	saved := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "", os.ErrNotExist }
	t.Cleanup(func() { platformDir.homeDir = saved })

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	_, err := DefaultConfigDir()
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = DefaultDataDir()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveConfigDir(t *testing.T) {
	withHome(t, filepath.FromSlash("/home/anna"))
	t.Setenv("XDG_CONFIG_HOME", "")
	platformDefault, err := DefaultConfigDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"flag over env", "/flag/cfg", "/env/cfg", "/flag/cfg"},
		{"env when no flag", "", "/env/cfg", "/env/cfg"},
		{"platform default", "", "", platformDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		flag   string
		config string
		env    string
		want   string
	}{
		{"flag over everything", "/flag/data", "/cfg/data", "/env/data", "/flag/data"},
		{"config over env", "", "/cfg/data", "/env/data", "/cfg/data"},
		{"env when nothing else", "", "", "/env/data", "/env/data"},
		{"working directory default", "", "", "", filepath.Join(cwd, DefaultDataDirName)},
		{"relative flag", "rel/data", "", "", filepath.Join(cwd, "rel", "data")},
		{"relative config", "", "rel/cfg", "", filepath.Join(cwd, "rel", "cfg")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRelativeEnvIsAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "rel/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}

func TestResolveSourceDir(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		config string
		want   string
	}{
		{"empty uses config dir", "", "/etc/formkit", "/etc/formkit"},
		{"relative joins config dir", "lists", "/etc/formkit", "/etc/formkit/lists"},
		{"absolute wins", "/srv/lists/", "/etc/formkit", "/srv/lists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), ResolveSourceDir(filepath.FromSlash(tt.value), filepath.FromSlash(tt.config)))
		})
	}
}
