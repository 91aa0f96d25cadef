package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

func lastCompleted(h engine.Habit) string {
	if !h.Completed() {
		return "never"
	}
	return humanize.RelTime(h.LastCompletedAt, now(), "ago", "from now")
}

func newListCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			habits := e.ledger.Snapshot()
			if len(habits) == 0 {
				fmt.Fprintln(out, muted.Render("No habits yet. Add one with: pixeltrainer add <name>"))
				return nil
			}

			fmt.Fprintln(out, title.Render("Habits"))
			fmt.Fprintln(out, muted.Render(fmt.Sprintf("%-8s  %-24s %-6s %-8s %-7s %6s %5s  %s",
				"ID", "Name", "Type", "Freq", "Diff", "Streak", "Evo", "Last")))
			for _, h := range habits {
				id := h.ID
				if len(id) > 8 {
					id = id[:8]
				}
				fmt.Fprintf(out, "%-8s  %-24s %-6s %-8s %-7s %6d %4d%%  %s\n",
					id, h.Name, h.Type.Label(), h.Frequency, h.Difficulty, h.Streak, h.LevelXP, lastCompleted(h))
			}
			return nil
		},
	}
	return cmd
}
