package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/timeline"
	"github.com/javiermolinar/tramo/internal/tui/view"
)

func (a *App) showCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project's phases",
		Long: `Display a project's phases in order with their dates.

This is a quick read-only view. Run tramo without arguments to reorder
phases interactively.`,
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

			PrintProjectHeader(out, project)
			if len(phases) == 0 {
				fmt.Fprintln(out, "No phases yet. Add one with: tramo phase add "+project.Name+" NAME DAYS")
				return nil
			}

			var budget int64
			for _, p := range phases {
				budget += p.Budget
			}
			PrintPhaseTable(out, phases, PrintOpts{
				Verbose:    verbose,
				ShowBudget: budget > 0,
				Highlight:  -1,
			})

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Timeline: %s\n", TimelineBar(phases, 40))
			if budget > 0 {
				fmt.Fprintf(out, "Budget: %s\n", view.FormatBudget(budget))
			}
			if res := timeline.Validate(phases, project.Boundary()); !res.Valid {
				fmt.Fprintln(out, formatWarn("Warning: "+res.Reason))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full phase names")
	return cmd
}
