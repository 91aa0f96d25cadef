package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

func newStatusCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show trainer level and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			habits := e.ledger.Snapshot()
			st := engine.Compute(habits)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, title.Render("Trainer Profile"))
			fmt.Fprintln(out, labelValue("Trainer level", st.TrainerLevel))
			fmt.Fprintln(out, labelValue("Habits", st.TotalHabits))
			fmt.Fprintln(out, labelValue("Completions", st.TotalCompletions))
			fmt.Fprintln(out, labelValue("Total streak", st.TotalStreak))
			info, ok, err := e.store.BlobInfo(engine.HabitsKey)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(out, labelValue("Last saved", fmt.Sprintf("%s, %s",
					humanize.RelTime(info.UpdatedAt, now(), "ago", "from now"),
					humanize.Bytes(uint64(info.Size)))))
			} else {
				fmt.Fprintln(out, labelValue("Last saved", "never"))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, title.Render("Badges"))
			for _, b := range engine.AllBadges() {
				if st.HasBadge(b.ID) {
					fmt.Fprintf(out, "- %s %s\n", gold.Render(b.Title), muted.Render(b.Description))
				} else {
					fmt.Fprintf(out, "- %s %s\n", muted.Render(b.Title+" (locked)"), muted.Render(b.Description))
				}
			}

			if entries := engine.Achievements(habits); len(entries) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, title.Render("Pokedex"))
				for _, en := range entries {
					fmt.Fprintf(out, "- %s %s %s\n", en.Name, typeLabel(en.Type),
						muted.Render(fmt.Sprintf("captures %d • stage %d • streak %d", en.Captures, en.Stage+1, en.Streak)))
				}
			}
			return nil
		},
	}
	return cmd
}
