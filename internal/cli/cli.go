// Package cli implements the garage3d command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mehinger01/garage-layout-planner/pkg/buildinfo"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/observability"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/scene/build"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "garage3d"

	// defaultWidth and defaultHeight size offline PNG snapshots.
	defaultWidth  = 1024
	defaultHeight = 768
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
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "garage3d",
		Short:        "Garage3d composes garage layout plans into 3D scenes",
		Long:         `Garage3d turns a garage layout plan into a composed 3D scene: offline PNG snapshots, an interactive terminal viewer with orbit and picking, an HTTP server, and scene-graph diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Plan Loading
// =============================================================================

// loadPlan reads a plan file and logs its shape.
func (c *CLI) loadPlan(path string) (*layout.Plan, error) {
	plan, err := layout.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded plan",
		"path", path,
		"envelope", plan.Envelope,
		"zones", len(plan.Zones),
		"openings", len(plan.Openings))
	return plan, nil
}

// composeScene builds the scene for a plan, emitting build events.
func composeScene(ctx context.Context, plan *layout.Plan) *scene.Scene {
	observability.Scene().OnBuildStart(ctx, len(plan.Zones))
	start := time.Now()
	sc := build.Build(plan, texture.New())
	observability.Scene().OnBuildComplete(ctx, sc.Root.Count(), time.Since(start), nil)
	return sc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/garage3d/).
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
