package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/timeline"
)

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PROJECT",
		Short: "Check that a project's phases tile its range",
		Long: `Check that the phases are contiguous, do not overlap, and cover the
project range exactly. Exits with an error when they do not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			project, phases, err := a.loadProject(context.Background(), args[0])
			if err != nil {
				return err
			}

			res := timeline.Validate(phases, project.Boundary())
			if !res.Valid {
				where := ""
				if res.Index >= 0 && res.Index < len(phases) {
					where = fmt.Sprintf(" (phase %d, %s)", res.Index+1, phases[res.Index].Name)
				}
				fmt.Fprintln(out, formatError(fmt.Sprintf("✗ %s%s", res.Reason, where)))
				return fmt.Errorf("%s: %w", project.Name, res.Err())
			}

			b := project.Boundary()
			fmt.Fprintln(out, formatOK(fmt.Sprintf("✓ %d phases cover %s (%d days)", len(phases), b, b.Days())))
			return nil
		},
	}
}
