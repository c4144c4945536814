package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/dualtrack/internal/export"
)

func addExport(topLevel *cobra.Command) {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV or the whole tracker as JSON.",
		Example: `
dualtrack export --format csv > tasks.csv
dualtrack export --format json --out backup.json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != export.FormatCSV && format != export.FormatJSON {
				return fmt.Errorf("unknown format %q: want csv or json", format)
			}
			e, err := openEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			d, custom := e.sess.Data(), e.cats.List()
			if out == "" || out == "-" {
				return export.Write(cmd.OutOrStdout(), format, d, custom)
			}
			if err := export.ToFile(format, d, custom, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	topLevel.AddCommand(cmd)
}
