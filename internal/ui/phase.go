package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/phase"
)

func (a *App) phaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "phase",
		Aliases: []string{"phases"},
		Short:   "Manage the phases of a project",
	}
	cmd.AddCommand(a.phaseAddCmd())
	cmd.AddCommand(a.phaseRenameCmd())
	cmd.AddCommand(a.phaseRemoveCmd())
	return cmd
}

func (a *App) phaseAddCmd() *cobra.Command {
	var budget string

	cmd := &cobra.Command{
		Use:   "add PROJECT NAME DAYS",
		Short: "Append a phase to a project",
		Long: `Append a phase to the end of a project.

The new phase takes DAYS days from the current last phase. The first
phase of a project always spans the whole project range.`,
		Example: `  tramo phase add Website Design 10
  tramo phase add Website Build 30d --budget 12000.50`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := parseDays(args[2])
			if err != nil {
				return err
			}
			minor, err := ParseBudget(budget)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			project, err := a.repo.GetProjectByName(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := phase.New(project.ID, args[1], "", days)
			if err != nil {
				return err
			}
			p.Budget = minor
			if err := a.repo.CreatePhase(ctx, p); err != nil {
				return fmt.Errorf("adding phase: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s..%s\n", formatAccent(p.Name),
				project.Name, p.Start, p.End)
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "Phase budget, e.g. 1500.00")
	return cmd
}

func (a *App) phaseRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROJECT POS NAME",
		Short: "Rename the phase at position POS",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args[2:], " "))
			if name == "" {
				return phase.ErrEmptyName
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			_, p, err := a.phaseAt(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.repo.RenamePhase(ctx, p.ID, name); err != nil {
				return fmt.Errorf("renaming phase: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", p.Name, formatAccent(name))
			return nil
		},
	}
}

func (a *App) phaseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm PROJECT POS",
		Aliases: []string{"remove"},
		Short:   "Delete the phase at position POS",
		Long: `Delete a phase. The phases after it move up and the last phase
absorbs the freed days.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			_, p, err := a.phaseAt(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.repo.DeletePhase(ctx, p.ID); err != nil {
				return fmt.Errorf("deleting phase: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatAccent(p.Name))
			return nil
		},
	}
}

// loadProject resolves a project by name together with its phases.
func (a *App) loadProject(ctx context.Context, name string) (*phase.Project, []phase.Phase, error) {
	project, err := a.repo.GetProjectByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	phases, err := a.repo.ListPhases(ctx, project.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing phases: %w", err)
	}
	return project, phases, nil
}

// phaseAt resolves the phase at a 1-based position of the named project.
func (a *App) phaseAt(ctx context.Context, projectName, pos string) (*phase.Project, phase.Phase, error) {
	project, phases, err := a.loadProject(ctx, projectName)
	if err != nil {
		return nil, phase.Phase{}, err
	}
	if len(phases) == 0 {
		return nil, phase.Phase{}, fmt.Errorf("project %s has no phases", project.Name)
	}
	i, err := parsePosition(pos, len(phases))
	if err != nil {
		return nil, phase.Phase{}, err
	}
	return project, phases[i], nil
}
