package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

// resolveID accepts a full habit id or a unique prefix of one.
func resolveID(l *engine.Ledger, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if _, ok := l.Get(arg); ok {
		return arg, nil
	}
	var matches []string
	for _, h := range l.Snapshot() {
		if strings.HasPrefix(h.ID, arg) {
			matches = append(matches, h.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", &engine.NotFoundError{ID: arg}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d habits", arg, len(matches))
	}
}

func exactlyOneID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New("id is required")
	}
	return nil
}

func newCompleteCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"do"},
		Short:   "Record a completion for a habit",
		Args:    exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := resolveID(e.ledger, args[0])
			if err != nil {
				return err
			}
			res, err := e.ledger.RecordCompletion(id, now())
			if err != nil {
				return err
			}
			if err := e.ledger.SaveErr(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, good.Render(fmt.Sprintf("Habit completed! +%d XP", res.XPGained)))
			fmt.Fprintln(out, labelValue("Habit", res.Habit.Name))
			fmt.Fprintln(out, labelValue("Streak", fmt.Sprintf("%d → %d", res.PriorStreak, res.NewStreak)))
			fmt.Fprintln(out, labelValue("Evolution", fmt.Sprintf("%d%%", res.Habit.LevelXP)))
			if res.Evolved() {
				fmt.Fprintln(out, gold.Render(fmt.Sprintf("%s evolved to stage %d!", res.Habit.Name, res.StageAfter+1)))
			}
			return nil
		},
	}
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a habit and its history",
		Args:    exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := resolveID(e.ledger, args[0])
			if errors.Is(err, engine.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), muted.Render("No habit matches "+args[0]))
				return nil
			}
			if err != nil {
				return err
			}

			res := e.ledger.RemoveHabit(id)
			if err := e.ledger.SaveErr(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed "+res.Habit.Name)
			return nil
		},
	}
	return cmd
}
