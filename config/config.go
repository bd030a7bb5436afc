// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config reads and writes the loader configuration file.
//
// The file is TOML:
//
//	backends = ["xcb", "wayland"]
//	extensions = ["VK_KHR_surface"]
//	log_level = "debug"
//
// An empty backend list keeps the host default. An empty log level keeps
// logging off.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file name inside Dir.
const FileName = "wsi.toml"

// Config is the loader configuration.
type Config struct {
	// Backends names the window-system backends to compile in
	// ("win32", "mir", "wayland", "xcb", "xlib").
	Backends []string `toml:"backends"`

	// Extensions are instance extensions requested on every instance.
	Extensions []string `toml:"extensions"`

	// LogLevel is one of "debug", "info", "warn", "error" or empty.
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Extensions: []string{"VK_KHR_surface"},
	}
}

// Load reads the configuration at path.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := checkKeys(md); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Decode parses a configuration from TOML text.
func Decode(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := checkKeys(md); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func checkKeys(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
}

// Write encodes c as TOML to w.
func (c *Config) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Save writes c to path, creating the parent directory when needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}

// Validate checks the log level. Backend names are checked by the
// instance, which knows the platform.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level. An empty level reads as Info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return l, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level, or nil
// when no level is set.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if c.LogLevel == "" {
		return nil
	}
	l, err := c.Level()
	if err != nil {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// Dir returns the directory holding the configuration file:
// $XDG_CONFIG_HOME/gogpu, falling back to ~/.config/gogpu.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return filepath.Join(dir, "gogpu")
		}
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "gogpu")
}

// Path returns the full path of the configuration file.
func Path() string {
	return filepath.Join(Dir(), FileName)
}
