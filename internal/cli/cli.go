package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jewelry/pkg/buildinfo"
	"github.com/matzehuels/jewelry/pkg/cache"
	"github.com/matzehuels/jewelry/pkg/observability"
	"github.com/matzehuels/jewelry/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jewelry"

	// defaultConfigFile is picked up from the working directory when
	// --config is not given.
	defaultConfigFile = "jewelry.toml"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableHooks routes layout, cache and HTTP events to the CLI logger.
func (c *CLI) EnableHooks() {
	observability.NewLogHooks(c.Logger).Register()
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Jewelry packs tiles into a diamond grid",
		Long: `Jewelry lays out tiles on a staggered diamond grid. Normal tiles fill one
cell; huge tiles occupy a diamond-shaped footprint of four cells; companion
tiles are moved next to the huge tile they follow.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Layout Flags
// =============================================================================

// layoutFlags are the flags shared by every command that runs a layout pass.
// Flags override the config file, which overrides the tile set's own values.
type layoutFlags struct {
	config      string
	columns     int
	columnWidth float64
	reorder     bool
	cache       string
	noCache     bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "config file (default: ./"+defaultConfigFile+" if present)")
	cmd.Flags().IntVarP(&f.columns, "columns", "c", 0, "number of grid columns (default: from tile set, else 4)")
	cmd.Flags().Float64Var(&f.columnWidth, "column-width", 0, "host column width in pixels (default: sampled tile width)")
	cmd.Flags().BoolVar(&f.reorder, "reorder", false, "spread tiles of the last row across even then odd columns")
	cmd.Flags().StringVar(&f.cache, "cache", "", "cache target: directory, redis:// or mongodb:// URL")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// configPath returns the config file in effect, or "" when there is none.
func (f *layoutFlags) configPath() string {
	if f.config != "" {
		return f.config
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// resolve merges config file and flags into pipeline options and returns
// the cache target to use.
func (f *layoutFlags) resolve(cmd *cobra.Command) (pipeline.Options, string, error) {
	var opts pipeline.Options
	target := f.cache

	if path := f.configPath(); path != "" {
		cfg, err := pipeline.LoadConfig(path)
		if err != nil {
			return opts, "", err
		}
		opts = cfg.Options
		if target == "" {
			target = cfg.Cache
		}
	}

	flags := cmd.Flags()
	if flags.Changed("columns") {
		opts.Columns = f.columns
	}
	if flags.Changed("column-width") {
		opts.ColumnWidth = f.columnWidth
	}
	if flags.Changed("reorder") {
		opts.LastLineReorder = f.reorder
	}
	return opts, target, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. An empty target uses the
// file cache under the user cache directory.
func (c *CLI) newRunner(ctx context.Context, target string, noCache bool) (*pipeline.Runner, error) {
	store, err := openCache(ctx, target, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func openCache(ctx context.Context, target string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if target != "" {
		return cache.Open(ctx, target)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jewelry/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
