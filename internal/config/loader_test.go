package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dusk\npage_size: 5\nlogging:\n  level: debug\n"), 0o644))
	t.Setenv("ADVISOR_PAGE_SIZE", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("theme", "vapor", "")
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse([]string{"--log-level", "warn"}))

	l := NewLoader()
	l.SetConfigFile(path)
	require.NoError(t, l.BindFlags(fs))
	cfg, err := l.Load()
	require.NoError(t, err)

	require.Equal(t, "dusk", cfg.Theme)
	require.Equal(t, 7, cfg.PageSize)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadDiscoversConfigInWorkingDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "advisor.yaml"), []byte("watch: true\n"), 0o644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.True(t, cfg.Watch)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	l := NewLoader()
	l.SetConfigFile(filepath.Join(dir, "nope.yaml"))
	_, err := l.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon"
	cfg.PageSize = 0
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "theme")
	require.Contains(t, err.Error(), "page_size")
}

func TestExpandTilde(t *testing.T) {
	home := isolate(t)
	require.Equal(t, filepath.Join(home, "logs", "a.log"), expandTilde("~/logs/a.log"))
	require.Equal(t, "/abs", expandTilde("/abs"))
}
