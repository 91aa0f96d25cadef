package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/pixeltrainer/internal/export"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completion history as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (csv|json)", format)
			}

			e, err := opts.open(now())
			if err != nil {
				return err
			}
			defer e.Close()

			habits := e.ledger.Snapshot()
			if out == "" || out == "-" {
				if format == "csv" {
					return export.WriteCSV(cmd.OutOrStdout(), habits)
				}
				return export.WriteJSON(cmd.OutOrStdout(), habits, now())
			}

			if format == "csv" {
				err = export.ToCSV(habits, out)
			} else {
				err = export.ToJSON(habits, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Exported to "+out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", `Output file ("-" or empty for stdout)`)
	return cmd
}
