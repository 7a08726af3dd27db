package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tramo/internal/logging"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/timeline"
)

func (a *App) moveCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "move PROJECT FROM TO",
		Short: "Move the phase at position FROM to position TO",
		Long: `Reorder a phase without opening the TUI.

Positions are 1-based. Each phase keeps its length and every date is
recalculated so the phases still cover the project range. The move is
rejected, and nothing is saved, if the new order would not fit.`,
		Example: `  tramo move Website 3 1
  tramo move Website 1 3 --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return a.movePhase(context.Background(), cmd.OutOrStdout(), args[0], args[1], args[2], dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the result without saving it")
	return cmd
}

// movePhase runs one keyboard reorder session against the stored phases.
func (a *App) movePhase(ctx context.Context, out io.Writer, projectName, fromArg, toArg string, dryRun bool) error {
	project, phases, err := a.loadProject(ctx, projectName)
	if err != nil {
		return err
	}
	if len(phases) < 2 {
		return fmt.Errorf("%w: %s has %d", session.ErrTooFewPhases, project.Name, len(phases))
	}
	from, err := parsePosition(fromArg, len(phases))
	if err != nil {
		return err
	}
	to, err := parsePosition(toArg, len(phases))
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(a.debug, a.config.Log.DebugPath)
	if err != nil {
		return err
	}
	defer closeLog()

	var saveErr error
	engine := session.New(
		session.WithLogger(logger),
		session.WithAnnouncer(session.AnnouncerFunc(func(msg string) {
			// The commit callback runs first, so a failed save replaces the
			// committed announcement.
			if saveErr != nil {
				fmt.Fprintln(out, formatError("Move of "+phases[from].Name+" not saved"))
				return
			}
			fmt.Fprintln(out, formatMuted(msg))
		})),
		session.WithCommit(func(reordered []phase.Phase) {
			if dryRun {
				return
			}
			saveErr = a.repo.ReplacePhases(ctx, project.ID, reordered)
		}),
	)
	if err := engine.Load(phases, project.Boundary()); err != nil {
		return err
	}
	if err := engine.EnterKeyboard(phases[from].ID); err != nil {
		return err
	}
	if err := engine.Step(to - from); err != nil {
		return err
	}
	res, err := engine.Confirm()
	if err != nil {
		return err
	}

	switch res.Outcome {
	case session.OutcomeRejected:
		fmt.Fprintln(out, formatError("Rejected: "+res.Validation.Reason))
		return fmt.Errorf("moving %s: %w", phases[from].Name, res.Validation.Err())
	case session.OutcomeCommitted:
		if saveErr != nil {
			return fmt.Errorf("saving order: %w", saveErr)
		}
		fmt.Fprintln(out)
		PrintPhaseTable(out, res.Phases, PrintOpts{Highlight: to})
		if dryRun {
			reordered := timeline.Reorder(phases, from, to)
			if note := timeline.AbsorbedNote(reordered, project.Boundary()); note != "" {
				fmt.Fprintln(out, formatMuted("\n"+note))
			}
			fmt.Fprintln(out, formatWarn("\nDry run: order not saved"))
		} else {
			fmt.Fprintln(out, formatOK("\nSaved "+strconv.Itoa(len(res.Phases))+" phases"))
		}
	}
	return nil
}
