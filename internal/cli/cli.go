package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidedeck/internal/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "slidedeck"

	// shutdownTimeout bounds how long serve waits for open requests.
	shutdownTimeout = 5 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags flags
}

// flags are the settings shared by every command. Only flags the user set
// override the loaded configuration.
type flags struct {
	config     string
	output     string
	title      string
	debounce   time.Duration
	unsafeHTML bool
	watch      bool
	addr       string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig layers the changed flags of cmd over the file and environment
// settings for source.
func (c *CLI) loadConfig(cmd *cobra.Command, source string) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: c.flags.config,
		DeckPath:   source,
	})
	if err != nil {
		return config.Config{}, err
	}
	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}

	fs := cmd.Flags()
	if fs.Changed("output") {
		cfg.Output = c.flags.output
	}
	if fs.Changed("title") {
		cfg.Title = c.flags.title
	}
	if fs.Changed("debounce") {
		cfg.Debounce.Duration = c.flags.debounce
	}
	if fs.Changed("unsafe-html") {
		cfg.UnsafeHTML = c.flags.unsafeHTML
	}
	if fs.Lookup("addr") != nil && fs.Changed("addr") {
		cfg.Addr = c.flags.addr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
