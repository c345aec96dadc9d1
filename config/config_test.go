// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audpipe/audio"
)

func TestParse(t *testing.T) {
	t.Parallel()

	data := []byte(`
input: in.wav
output: out.wav
sample_type: f32
verify: true
log:
  level: debug
`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Config{Input: "in.wav", Output: "out.wav", SampleType: "f32", Verify: true, Log: Log{Level: "debug"}}
	if *c != want {
		t.Errorf("Parse() = %+v, want %+v", *c, want)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_UnknownField(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("input: a.wav\nresample: 8000\n")); err == nil {
		t.Error("Parse() accepted an unknown field")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "convert.yaml")
	if err := os.WriteFile(path, []byte("input: a.aiff\noutput: b.au\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Input != "a.aiff" || c.Output != "b.au" {
		t.Errorf("Load() = %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	c := &Config{Input: "in.wav", Output: "out.wav", SampleType: "s16"}
	data, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *c {
		t.Errorf("round trip = %+v, want %+v", *got, *c)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no input", Config{Output: "b.wav"}, ErrNoInput},
		{"no output", Config{Input: "a.wav"}, ErrNoOutput},
		{"same file", Config{Input: "a.wav", Output: "./a.wav"}, ErrSameFile},
		{"unknown input", Config{Input: "a.mp3", Output: "b.wav"}, ErrUnknownExtension},
		{"unknown output", Config{Input: "a.wav", Output: "b.ogg"}, ErrUnknownExtension},
		{"sample type", Config{Input: "a.wav", Output: "b.wav", SampleType: "s24"}, ErrSampleType},
		{"log level", Config{Input: "a.wav", Output: "b.wav", Log: Log{Level: "loud"}}, ErrLogLevel},
		{"ok", Config{Input: "a.wav", Output: "b.wav", SampleType: "F64", Log: Log{Level: "warn"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseSampleType(t *testing.T) {
	t.Parallel()

	tests := map[string]audio.SampleType{
		"":     {},
		"s16":  audio.Signed(16),
		" f32": audio.Float(32),
		"F64":  audio.Float(64),
	}
	for in, want := range tests {
		got, err := ParseSampleType(in)
		if err != nil || got != want {
			t.Errorf("ParseSampleType(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	if _, err := ParseSampleType("u8"); !errors.Is(err, ErrSampleType) {
		t.Errorf("ParseSampleType(u8) error = %v", err)
	}
}

func TestLog_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := Log{Level: in}.SlogLevel()
		if err != nil || got != want {
			t.Errorf("SlogLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.wav":      "wav",
		"dir/B.WAV":  "wav",
		"c.aif":      "aiff",
		"d.aiff":     "aiff",
		"e.au":       "au",
		"/tmp/f.snd": "au",
		"song.wave":  "wav",
	}
	for in, want := range tests {
		got, err := FormatKey(in)
		if err != nil || got != want {
			t.Errorf("FormatKey(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := FormatKey("noext"); !errors.Is(err, ErrUnknownExtension) {
		t.Errorf("FormatKey(noext) error = %v", err)
	}
}
