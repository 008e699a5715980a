package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fftranscode/internal/config"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Codec.Library != "libx264" {
		t.Fatalf("unexpected codec library: %q", cfg.Codec.Library)
	}
	if cfg.Codec.Profile != "High" || cfg.Codec.Level != "6.2" {
		t.Fatalf("unexpected profile/level: %q/%q", cfg.Codec.Profile, cfg.Codec.Level)
	}
	if cfg.Codec.Preset != "9" || cfg.Codec.CRF != "17" {
		t.Fatalf("unexpected preset/crf: %q/%q", cfg.Codec.Preset, cfg.Codec.CRF)
	}
	if !cfg.Run.Niced {
		t.Fatal("expected niced by default")
	}
	if cfg.Run.Interactive {
		t.Fatal("expected non-interactive by default")
	}
	if cfg.Run.SubprocessOut != "-" {
		t.Fatalf("unexpected subprocess_out: %q", cfg.Run.SubprocessOut)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "fftranscode", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[codec]
library = "libx265"
tune = " film "

[run]
niced = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Codec.Library != "libx265" {
		t.Fatalf("unexpected codec library: %q", cfg.Codec.Library)
	}
	if cfg.Codec.Tune != "film" {
		t.Fatalf("expected tune to be trimmed, got %q", cfg.Codec.Tune)
	}
	if cfg.Codec.Profile != "High" {
		t.Fatalf("expected untouched defaults to hold, got profile %q", cfg.Codec.Profile)
	}
	if cfg.Run.Niced {
		t.Fatal("expected niced=false from file")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "empty codec",
			contents: "[codec]\nlibrary = \"\"\n",
			want:     "codec.library",
		},
		{
			name:     "bad log format",
			contents: "[logging]\nformat = \"xml\"\n",
			want:     "logging.format",
		},
		{
			name:     "bad log level",
			contents: "[logging]\nlevel = \"trace\"\n",
			want:     "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}

	// Path fields expand against HOME, so compare the value sections only.
	def := config.Default()
	if cfg.Codec != def.Codec {
		t.Fatalf("sample codec section diverged from defaults: %+v", cfg.Codec)
	}
	if cfg.Run != def.Run {
		t.Fatalf("sample run section diverged from defaults: %+v", cfg.Run)
	}
	if cfg.Logging != def.Logging {
		t.Fatalf("sample logging section diverged from defaults: %+v", cfg.Logging)
	}
}

func TestExpandPathResolvesTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/media/out.mkv")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(tempHome, "media", "out.mkv") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
