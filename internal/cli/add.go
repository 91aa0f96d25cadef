package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/reminder"
)

func newAddCmd(opts *options) *cobra.Command {
	var (
		typ        string
		frequency  string
		difficulty string
		remindAt   string
		noReminder bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			prefs, err := e.store.LoadPreferences()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("type") {
				typ = prefs.DefaultType
			}
			if !cmd.Flags().Changed("frequency") {
				frequency = prefs.DefaultFrequency
			}
			if !cmd.Flags().Changed("difficulty") {
				difficulty = prefs.DefaultDifficulty
			}
			if !cmd.Flags().Changed("remind") {
				remindAt = prefs.DefaultReminder
			}

			d := engine.Draft{Name: strings.Join(args, " ")}
			var ok bool
			if d.Type, ok = engine.ParseType(typ); !ok {
				return fmt.Errorf("unknown type %q (flame|aqua|leaf)", typ)
			}
			if d.Frequency, ok = engine.ParseFrequency(frequency); !ok {
				return fmt.Errorf("unknown frequency %q (daily|weekly|monthly)", frequency)
			}
			if d.Difficulty, ok = engine.ParseDifficulty(difficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (easy|medium|hard)", difficulty)
			}
			if !noReminder {
				if _, _, err := reminder.ParseClock(remindAt); err != nil {
					return err
				}
				d.Reminder = engine.Reminder{Enabled: true, Time: strings.TrimSpace(remindAt)}
			}

			h, err := e.ledger.AddHabit(d, now())
			if err != nil {
				return err
			}
			if err := e.ledger.SaveErr(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, good.Render("Habit added"))
			fmt.Fprintln(out, labelValue("ID", h.ID))
			fmt.Fprintln(out, labelValue("Creature", typeLabel(h.Type)))
			fmt.Fprintln(out, labelValue("Schedule", fmt.Sprintf("%s • %s", h.Frequency, h.Difficulty)))
			if h.Reminder.Enabled {
				fmt.Fprintln(out, labelValue("Reminder", h.Reminder.Time))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(engine.DefaultType), "Creature type (flame|aqua|leaf)")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(engine.DefaultFrequency), "Frequency (daily|weekly|monthly)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(engine.DefaultDifficulty), "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&remindAt, "remind", "08:00", "Daily reminder time HH:MM")
	cmd.Flags().BoolVar(&noReminder, "no-reminder", false, "Create without a reminder")

	return cmd
}
