package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/plan"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project from a YAML plan",
		Long: `Create a project and its phases from a YAML plan file.

Use - to read the plan from stdin.

Example plan:
  name: Website
  start: 2024-01-01
  end: 2024-03-31
  phases:
    - name: Design
      days: 20
    - name: Build
      days: 50
      budget: 1200000
    - name: Ship`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(resolvePath(args[0]))
				if err != nil {
					return fmt.Errorf("opening plan: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			project, err := plan.Import(context.Background(), a.repo, r)
			if err != nil {
				return fmt.Errorf("importing plan: %w", err)
			}

			b := project.Boundary()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %s (%d days)\n", formatAccent(project.Name), b, b.Days())
			return nil
		},
	}
}

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write a project as a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if output == "" || output == "-" {
				return plan.Export(context.Background(), a.repo, args[0], cmd.OutOrStdout())
			}

			path := resolvePath(output)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := plan.Export(context.Background(), a.repo, args[0], f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// resolvePath expands a leading ~ and makes the path absolute.
func resolvePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
