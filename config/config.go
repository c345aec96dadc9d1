// SPDX-License-Identifier: EPL-2.0

// Package config loads audpipe conversion settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audpipe/audio"
)

var (
	ErrNoInput          = errors.New("config: input file is required")
	ErrNoOutput         = errors.New("config: output file is required")
	ErrSameFile         = errors.New("config: input and output are the same file")
	ErrSampleType       = errors.New("config: unknown sample type")
	ErrLogLevel         = errors.New("config: unknown log level")
	ErrUnknownExtension = errors.New("config: unknown file extension")
)

// Config describes one conversion.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	// SampleType is the output sample type. Empty keeps the input's.
	SampleType string `yaml:"sample_type,omitempty"`
	// Verify re-reads WAV output with an independent decoder.
	Verify bool `yaml:"verify,omitempty"`
	Log    Log  `yaml:"log,omitempty"`
}

type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Load reads and validates a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML without validating it; the caller may still override
// fields before calling Validate.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalWithOptions(data, &c, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &c, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the config describes a conversion that can run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	if c.Output == "" {
		return ErrNoOutput
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("%w: %s", ErrSameFile, c.Input)
	}
	for _, p := range []string{c.Input, c.Output} {
		if _, err := FormatKey(p); err != nil {
			return err
		}
	}
	if _, err := ParseSampleType(c.SampleType); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ParseSampleType maps a sample type name to its value. The empty string
// yields the zero SampleType, meaning "keep the input's".
func ParseSampleType(s string) (audio.SampleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return audio.SampleType{}, nil
	case "s16":
		return audio.Signed(16), nil
	case "f32":
		return audio.Float(32), nil
	case "f64":
		return audio.Float(64), nil
	}
	return audio.SampleType{}, fmt.Errorf("%w: %q (want s16, f32 or f64)", ErrSampleType, s)
}

// SlogLevel converts the configured level; empty means info.
func (l Log) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, l.Level)
	}
	return lvl, nil
}

// FormatKey returns the registry key of a file name: "wav", "aiff" or "au".
func FormatKey(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return "wav", nil
	case ".aif", ".aiff":
		return "aiff", nil
	case ".au", ".snd":
		return "au", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExtension, path)
}
