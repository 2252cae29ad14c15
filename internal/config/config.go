// Package config loads threadctl settings from a YAML file.
//
// Example file:
//
//	max_depth: 3
//	format: text
//	style: numbered
//	short_ping: true
//	where: approved = true
//	store_dir: ~/.threadctl/store
//	log:
//	  enabled: true
//	  level: debug
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/threadkit/internal/logger"
	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/printer"
	"github.com/joshuapare/threadkit/thread/walker"
)

// Config holds all file-configurable settings. CLI flags override them.
type Config struct {
	MaxDepth       int    `yaml:"max_depth"`
	Format         string `yaml:"format"`
	Style          string `yaml:"style"`
	IndentSize     int    `yaml:"indent_size"`
	ShortPing      bool   `yaml:"short_ping"`
	ShowDates      bool   `yaml:"show_dates"`
	ShowModeration bool   `yaml:"show_moderation"`
	ExcerptRunes   int    `yaml:"excerpt_runes"`

	// Where is a default filter expression applied before rendering.
	Where string `yaml:"where"`

	// StoreDir is the badger directory used by import and --thread.
	StoreDir string `yaml:"store_dir"`

	Log Log `yaml:"log"`
}

// Log configures internal/logger.
type Log struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`
}

// Default returns the built-in settings, matching printer.DefaultOptions.
func Default() *Config {
	opts := printer.DefaultOptions()
	return &Config{
		MaxDepth:       opts.MaxDepth,
		Format:         string(opts.Format),
		Style:          string(opts.Style),
		IndentSize:     opts.IndentSize,
		ShortPing:      opts.ShortPing,
		ShowDates:      opts.ShowDates,
		ShowModeration: opts.ShowModeration,
		ExcerptRunes:   opts.ExcerptRunes,
		Log:            Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.StoreDir = expandHome(cfg.StoreDir)
	cfg.Log.Dir = expandHome(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("config loaded", "path", path)
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.MaxDepth < walker.Flat {
		return types.Wrap(types.ErrInvalidDepth, fmt.Errorf("max_depth %d", c.MaxDepth))
	}
	switch printer.Format(c.Format) {
	case printer.FormatText, printer.FormatJSON, printer.FormatTree:
	default:
		return fmt.Errorf("unknown format %q (want text, json or tree)", c.Format)
	}
	switch printer.Style(c.Style) {
	case printer.StylePlain, printer.StyleNumbered:
	default:
		return fmt.Errorf("unknown style %q (want plain or numbered)", c.Style)
	}
	if c.IndentSize < 0 {
		return fmt.Errorf("indent_size must not be negative, got %d", c.IndentSize)
	}
	if c.ExcerptRunes < 0 {
		return fmt.Errorf("excerpt_runes must not be negative, got %d", c.ExcerptRunes)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// PrinterOptions converts the settings into printer options.
func (c *Config) PrinterOptions() printer.Options {
	return printer.Options{
		Format:         printer.Format(c.Format),
		Style:          printer.Style(c.Style),
		IndentSize:     c.IndentSize,
		MaxDepth:       c.MaxDepth,
		ShortPing:      c.ShortPing,
		ShowDates:      c.ShowDates,
		ShowModeration: c.ShowModeration,
		ExcerptRunes:   c.ExcerptRunes,
	}
}

// LoggerOptions converts the log section into logger options.
func (c *Config) LoggerOptions() (logger.Options, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Options{}, err
	}
	return logger.Options{Enabled: c.Log.Enabled, LogDir: c.Log.Dir, Level: level}, nil
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
