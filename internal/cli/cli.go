// Package cli implements the hellion-blueprint command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/internal/config"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completions.
const appName = "hellion-blueprint"

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

	configPath string
	config     *config.Config
	catalog    *catalog.Catalog
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Inspect and edit station blueprints",
		Long: `hellion-blueprint loads station blueprint documents, checks and repairs
their docking topology, and edits it: add or remove structures, dock and
undock ports, print or render the docking hierarchy.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.dockCommand())
	root.AddCommand(c.undockCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration file and applies its log level.
// The --verbose flag, handled in main, is applied afterwards and wins.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.SetLogLevel(cfg.Level())
	return nil
}

// settings returns the loaded configuration, or defaults when none was loaded.
func (c *CLI) settings() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// structureCatalog returns the configured catalog, loading it on first use.
func (c *CLI) structureCatalog() (*catalog.Catalog, error) {
	if c.catalog != nil {
		return c.catalog, nil
	}
	cat, err := c.settings().LoadCatalog()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Catalog loaded", "types", cat.Len(), "path", c.settings().Catalog)
	c.catalog = cat
	return cat, nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), buildinfo.String()+"\n")
			return err
		},
	}
}
