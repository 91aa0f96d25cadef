package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/tui"
)

const Version = "0.3.0"

// now is swapped in tests.
var now = time.Now

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the TUI.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pixeltrainer",
		Short:         "Pixel Trainer: raise pixel creatures by keeping your habits",
		Long:          "Pixel Trainer tracks daily, weekly and monthly habits. Every completion feeds a pixel creature that evolves as it gains experience.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			app := tui.NewApp(e.ledger, e.store, tui.Options{
				Bell:   e.cfg.Bell,
				Logger: e.log,
			})
			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/pixeltrainer/config.yaml)")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&opts.logFile, "log-file", "", `Log file, "-" for stderr (overrides config)`)

	root.AddCommand(
		newAddCmd(opts),
		newCompleteCmd(opts),
		newRemoveCmd(opts),
		newListCmd(opts),
		newStatusCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
