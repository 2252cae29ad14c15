package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/printer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "threadctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func Test_Default(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, printer.DefaultOptions(), cfg.PrinterOptions())
}

func Test_Load(t *testing.T) {
	path := writeConfig(t, `
max_depth: 3
style: numbered
short_ping: true
where: approved = true
log:
  enabled: true
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, "numbered", cfg.Style)
	require.Equal(t, "approved = true", cfg.Where)
	require.True(t, cfg.Log.Enabled)

	// Unset keys keep their defaults.
	require.Equal(t, "text", cfg.Format)
	require.Equal(t, printer.DefaultIndentSize, cfg.IndentSize)
	require.True(t, cfg.ShowModeration)

	opts := cfg.PrinterOptions()
	require.Equal(t, printer.StyleNumbered, opts.Style)
	require.True(t, opts.ShortPing)

	lopts, err := cfg.LoggerOptions()
	require.NoError(t, err)
	require.True(t, lopts.Enabled)
}

func Test_Load_Empty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func Test_Load_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg, err := Load(writeConfig(t, "store_dir: ~/threads\n"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "threads"), cfg.StoreDir)
}

func Test_Load_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "depth: 3\n"},
		{"bad depth", "max_depth: -2\n"},
		{"bad format", "format: html\n"},
		{"bad style", "style: bullets\n"},
		{"negative indent", "indent_size: -1\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"not yaml", "max_depth: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Validate_Depth(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = -1
	require.NoError(t, cfg.Validate())

	cfg.MaxDepth = -5
	require.ErrorIs(t, cfg.Validate(), types.ErrInvalidDepth)
}
