package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/timeline"
)

func (a *App) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(a.projectAddCmd())
	cmd.AddCommand(a.projectListCmd())
	cmd.AddCommand(a.projectRangeCmd())
	cmd.AddCommand(a.projectRemoveCmd())
	return cmd
}

func (a *App) projectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME START END",
		Short: "Create a project spanning START..END",
		Long: `Create a project with a fixed date range.

Phases added to the project always cover this range exactly.
Dates are inclusive and use YYYY-MM-DD.`,
		Example: `  tramo project add Website 2024-01-01 2024-03-31`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			p, err := phase.NewProject(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := a.repo.CreateProject(context.Background(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}
			b := p.Boundary()
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s (%d days)\n",
				formatAccent(p.Name), b, b.Days())
			return nil
		},
	}
}

func (a *App) projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			out := cmd.OutOrStdout()

			projects, err := a.repo.ListProjects(ctx)
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet.")
				return nil
			}

			for _, p := range projects {
				phases, err := a.repo.ListPhases(ctx, p.ID)
				if err != nil {
					return fmt.Errorf("listing phases of %s: %w", p.Name, err)
				}
				b := p.Boundary()
				fmt.Fprintf(out, "  %s  %s  %s\n", formatAccent(p.Name), b,
					formatMuted(fmt.Sprintf("%d days, %d phases", b.Days(), len(phases))))
			}
			return nil
		},
	}
}

func (a *App) projectRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range NAME START END",
		Short: "Change a project's date range",
		Long: `Change a project's date range and re-tile its phases.

The first phase moves to the new start and the last phase absorbs the
difference, so the phases keep covering the whole range.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			project, err := a.repo.GetProjectByName(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := phase.NewBoundary(args[1], args[2])
			if err != nil {
				return err
			}
			phases, err := a.repo.ListPhases(ctx, project.ID)
			if err != nil {
				return err
			}
			if err := a.repo.UpdateProjectRange(ctx, project.ID, b.Start, b.End); err != nil {
				return fmt.Errorf("updating range: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s now spans %s (%d days)\n",
				formatAccent(project.Name), b, b.Days())
			if note := timeline.AbsorbedNote(phases, b); note != "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted(note))
			}
			return nil
		},
	}
}

func (a *App) projectRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Delete a project and its phases",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			project, err := a.repo.GetProjectByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteProject(ctx, project.ID); err != nil {
				return fmt.Errorf("deleting project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", formatAccent(project.Name))
			return nil
		},
	}
}
