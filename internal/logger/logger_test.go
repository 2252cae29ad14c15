package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_ParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{" WARN ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_Init_File(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = Init(Options{}) })

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelDebug}))
	Debug("walk done", "nodes", 3)

	name := logPrefix + time.Now().Format("2006-01-02") + logSuffix
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"walk done"`)
	require.Contains(t, string(data), `"nodes":3`)
}

func Test_Init_Disabled(t *testing.T) {
	t.Cleanup(func() { _ = Init(Options{}) })

	require.NoError(t, Init(Options{Enabled: true}))
	require.True(t, L.Enabled(t.Context(), slog.LevelError))

	// Disabled drops every level.
	require.NoError(t, Init(Options{Enabled: false}))
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		require.False(t, L.Enabled(t.Context(), level), "level %s", level)
	}
}

func Test_CleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	old := filepath.Join(dir, logPrefix+"2024-01-01"+logSuffix)
	recent := filepath.Join(dir, logPrefix+"2024-06-29"+logSuffix)
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	cleanOldLogs(dir, now)

	require.NoFileExists(t, old)
	require.FileExists(t, recent)
	require.FileExists(t, other)
}
