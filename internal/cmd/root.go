package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"

	"tideline/internal/config"
	"tideline/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Provider    string           `help:"Scenario provider: local or remote (overrides $TIDELINE_PROVIDER)"`
	ProviderURL string           `help:"Base URL of the remote provider (overrides $TIDELINE_PROVIDER_URL)"`

	Play     PlayCmd     `cmd:"play" help:"Play a session interactively (default)" default:"1"`
	Game     GameCmd     `cmd:"game" help:"Drive the active session one step at a time"`
	Sessions SessionsCmd `cmd:"sessions" help:"Manage saved sessions (list, view, del, export, import)"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the local simulator over HTTP"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`

	// Internal fields (not flags)
	Config    config.Config    `kong:"-"`
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	if c.settings == nil {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		c.settings = settings
	}

	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set
	if c.MaxLogFiles == config.DefaultMaxLogFiles {
		switch {
		case env.MaxLogFiles != nil:
			c.MaxLogFiles = *env.MaxLogFiles
		case c.settings.MaxLogFiles != nil:
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}
	c.Debug = config.ResolveDebug(c.Debug, env, c.settings)
	c.DebugFile = config.ResolveDebugFile(c.DebugFile, env)

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	logging.Logger.Debug("Logging initialized", "file", logFilePath)

	cfg, err := config.Resolve(config.Flags{
		Provider:    c.Provider,
		ProviderURL: c.ProviderURL,
	}, env, c.settings)
	if err != nil {
		return err
	}
	c.Config = cfg

	// Create container AFTER logging is initialized so GORM logs go to the right place
	container, err := NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
