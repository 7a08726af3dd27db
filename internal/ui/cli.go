// Package ui implements the tramo command line.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/config"
	"github.com/javiermolinar/tramo/internal/db"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     phase.Repository
	ownsRepo bool // repo was opened by the App and is closed by Close
	config   *config.Config
	root     *cobra.Command
	debug    bool   // Enable debug logging
	project  string // Project focused when the TUI starts
	noColor  bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened from the configured database path on first use.
func NewApp(repo phase.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "tramo",
		Short: "Plan a project as a sequence of dated phases",
		Long: `Tramo keeps a project's phases back to back inside its date range.

Reorder phases with the mouse or the keyboard and every date is
recalculated so the phases still cover the whole project, no gaps
and no overlaps.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(a.repo, a.config, tui.Options{
				Debug:   a.debug,
				Project: a.project,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to the configured debug log")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")
	a.root.Flags().StringVarP(&a.project, "project", "p", "", "Project to show first")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.projectCmd())
	a.root.AddCommand(a.phaseCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tramo %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database if no repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the App opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		err := a.repo.Close()
		a.repo = nil
		a.ownsRepo = false
		return err
	}
	return nil
}
