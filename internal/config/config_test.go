package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/pipeline"
	"github.com/matzehuels/slidedeck/pkg/render"
	"github.com/matzehuels/slidedeck/pkg/watch"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// noEnvFile points Load at a dotenv path that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output != pipeline.DefaultOutputDir {
		t.Errorf("Output = %q, want %q", cfg.Output, pipeline.DefaultOutputDir)
	}
	if cfg.Title != render.DefaultTitle {
		t.Errorf("Title = %q, want %q", cfg.Title, render.DefaultTitle)
	}
	if cfg.Debounce.Duration != watch.DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Debounce.Duration, watch.DefaultDebounce)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.UnsafeHTML {
		t.Error("UnsafeHTML = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	deck := filepath.Join(t.TempDir(), "deck.yaml")
	cfg, err := Load(LoadOptions{DeckPath: deck, EnvFile: noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
	if cfg.Output != pipeline.DefaultOutputDir {
		t.Errorf("Output = %q, want default", cfg.Output)
	}
}

func TestLoadFileNextToDeck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
output = "public"
title = "Quarterly Review"
debounce = "750ms"
unsafe_html = true
style_file = "theme/style.css"
script_file = "/abs/script.js"
`)

	cfg, err := Load(LoadOptions{DeckPath: filepath.Join(dir, "deck.yaml"), EnvFile: noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Output != "public" {
		t.Errorf("Output = %q, want public", cfg.Output)
	}
	if cfg.Title != "Quarterly Review" {
		t.Errorf("Title = %q, want Quarterly Review", cfg.Title)
	}
	if cfg.Debounce.Duration != 750*time.Millisecond {
		t.Errorf("Debounce = %v, want 750ms", cfg.Debounce.Duration)
	}
	if !cfg.UnsafeHTML {
		t.Error("UnsafeHTML = false, want true")
	}
	if want := filepath.Join(dir, "theme", "style.css"); cfg.StyleFile != want {
		t.Errorf("StyleFile = %q, want %q", cfg.StyleFile, want)
	}
	if cfg.ScriptFile != "/abs/script.js" {
		t.Errorf("ScriptFile = %q, want /abs/script.js", cfg.ScriptFile)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default", cfg.Addr)
	}
	if want := filepath.Join(dir, FileName); cfg.File != want {
		t.Errorf("File = %q, want %q", cfg.File, want)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `addr = "0.0.0.0:9000"`)

	cfg, err := Load(LoadOptions{ConfigFile: path, DeckPath: "deck.yaml", EnvFile: noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q, want 0.0.0.0:9000", cfg.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", `output = `, errors.ErrCodeInvalidInput},
		{"unknown key", `colour = "blue"`, errors.ErrCodeInvalidInput},
		{"bad duration", `debounce = "soon"`, errors.ErrCodeInvalidInput},
		{"wrong type", `unsafe_html = "yes"`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			writeFile(t, path, tt.content)

			_, err := Load(LoadOptions{ConfigFile: path, EnvFile: noEnvFile(t)})
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if code := errors.GetCode(err); code != tt.code {
				t.Errorf("GetCode() = %q, want %q", code, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	_, err := Load(LoadOptions{ConfigFile: path, EnvFile: noEnvFile(t)})
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Load() = %v, want IO error", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
output = "public"
debounce = "750ms"
`)
	t.Setenv("SLIDEDECK_OUTPUT", "site")
	t.Setenv("SLIDEDECK_DEBOUNCE", "2s")
	t.Setenv("SLIDEDECK_UNSAFE_HTML", "true")
	t.Setenv("SLIDEDECK_TITLE", "")

	cfg, err := Load(LoadOptions{DeckPath: filepath.Join(dir, "deck.yaml"), EnvFile: noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "site" {
		t.Errorf("Output = %q, want site", cfg.Output)
	}
	if cfg.Debounce.Duration != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s", cfg.Debounce.Duration)
	}
	if !cfg.UnsafeHTML {
		t.Error("UnsafeHTML = false, want true")
	}
	if cfg.Title != render.DefaultTitle {
		t.Errorf("Title = %q, empty env value should be ignored", cfg.Title)
	}
}

func TestLoadEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SLIDEDECK_DEBOUNCE", "later"},
		{"SLIDEDECK_UNSAFE_HTML", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(LoadOptions{EnvFile: noEnvFile(t)})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() = %v, want invalid input", err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "SLIDEDECK_ADDR"
	t.Setenv(key, "")
	os.Unsetenv(key)

	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, key+"=127.0.0.1:9999\n")

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q, want 127.0.0.1:9999", cfg.Addr)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	const key = "SLIDEDECK_ADDR"
	t.Setenv(key, "10.0.0.1:80")

	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, key+"=127.0.0.1:9999\n")

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "10.0.0.1:80" {
		t.Errorf("Addr = %q, want 10.0.0.1:80", cfg.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"empty output", func(c *Config) { c.Output = "" }, errors.ErrCodeInvalidPath},
		{"root output", func(c *Config) { c.Output = "/" }, errors.ErrCodeInvalidPath},
		{"zero debounce", func(c *Config) { c.Debounce.Duration = 0 }, errors.ErrCodeInvalidInput},
		{"empty addr", func(c *Config) { c.Addr = "" }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if code := errors.GetCode(err); code != tt.code {
				t.Errorf("Validate() code = %q, want %q (err: %v)", code, tt.code, err)
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Output = "out"
	cfg.Title = "Talk"
	cfg.UnsafeHTML = true
	cfg.StyleFile = "a.css"
	cfg.ScriptFile = "b.js"

	opts := cfg.PipelineOptions("deck.yaml")
	want := pipeline.Options{
		Source:     "deck.yaml",
		OutputDir:  "out",
		Title:      "Talk",
		UnsafeHTML: true,
		StyleFile:  "a.css",
		ScriptFile: "b.js",
	}
	if opts != want {
		t.Errorf("PipelineOptions() = %+v, want %+v", opts, want)
	}
}

func TestString(t *testing.T) {
	s := Default().String()
	for _, want := range []string{`output = "slides"`, `debounce = "500ms"`, `addr = "127.0.0.1:8000"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
