// Package config loads slidedeck settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults
//  2. A TOML file: --config, or slidedeck.toml next to the deck
//  3. Variables from a .env file (never overriding the real environment)
//  4. SLIDEDECK_* environment variables
//  5. Command-line flags (applied by the CLI)
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/pipeline"
	"github.com/matzehuels/slidedeck/pkg/render"
	"github.com/matzehuels/slidedeck/pkg/watch"
)

// FileName is the config file looked up next to the deck document.
const FileName = "slidedeck.toml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SLIDEDECK_"

// DefaultAddr is the preview server listen address.
const DefaultAddr = "127.0.0.1:8000"

// Config holds all settings.
type Config struct {
	Output     string   `toml:"output"`
	Title      string   `toml:"title"`
	Debounce   Duration `toml:"debounce"`
	UnsafeHTML bool     `toml:"unsafe_html"`
	Addr       string   `toml:"addr"`
	StyleFile  string   `toml:"style_file"`
	ScriptFile string   `toml:"script_file"`

	// File is the config file that was loaded, if any.
	File string `toml:"-"`
}

// Duration is a time.Duration that decodes from strings like "750ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output:   pipeline.DefaultOutputDir,
		Title:    render.DefaultTitle,
		Debounce: Duration{watch.DefaultDebounce},
		Addr:     DefaultAddr,
	}
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string

	// DeckPath is the deck document; FileName is looked up beside it.
	DeckPath string

	// EnvFile is the dotenv file to read. Empty means ".env"; a missing
	// file is not an error.
	EnvFile string
}

// Load builds a Config from defaults, the config file and the environment.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit && opts.DeckPath != "" {
		path = filepath.Join(filepath.Dir(opts.DeckPath), FileName)
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", envFile)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeIO, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}

	// Paths in the file are relative to the file.
	base := filepath.Dir(path)
	c.StyleFile = resolve(base, c.StyleFile)
	c.ScriptFile = resolve(base, c.ScriptFile)
	c.File = path
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"OUTPUT":      &c.Output,
		"TITLE":       &c.Title,
		"ADDR":        &c.Addr,
		"STYLE_FILE":  &c.StyleFile,
		"SCRIPT_FILE": &c.ScriptFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "DEBOUNCE"); ok && v != "" {
		if err := c.Debounce.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%sDEBOUNCE", EnvPrefix)
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "UNSAFE_HTML"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%sUNSAFE_HTML", EnvPrefix)
		}
		c.UnsafeHTML = b
	}
	return nil
}

// Validate checks the combined settings.
func (c Config) Validate() error {
	if err := errors.ValidateOutputDir(c.Output); err != nil {
		return err
	}
	if c.Debounce.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "debounce must be positive, got %s", c.Debounce.Duration)
	}
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "addr cannot be empty")
	}
	return nil
}

// PipelineOptions converts the settings into compile options for source.
func (c Config) PipelineOptions(source string) pipeline.Options {
	return pipeline.Options{
		Source:     source,
		OutputDir:  c.Output,
		Title:      c.Title,
		UnsafeHTML: c.UnsafeHTML,
		StyleFile:  c.StyleFile,
		ScriptFile: c.ScriptFile,
	}
}

// String renders the settings as TOML.
func (c Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return buf.String()
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
