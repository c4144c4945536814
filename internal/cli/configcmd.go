package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/dualtrack/internal/config"
	"github.com/sadopc/dualtrack/internal/store"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file.",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Defaults().Write(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and the stored documents.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "data_dir:     %s\n", cfg.DataDir)
			fmt.Fprintf(w, "backend:      %s\n", cfg.Backend)
			fmt.Fprintf(w, "log_level:    %s\n", cfg.LogLevel)
			fmt.Fprintf(w, "log_file:     %s\n", cfg.LogFile)
			fmt.Fprintf(w, "series_days:  %d\n", cfg.SeriesDays)
			fmt.Fprintf(w, "click_window: %s\n", cfg.ClickWindow)
			fmt.Fprintf(w, "serve_addr:   %s\n", cfg.ServeAddr)
			return showDocuments(w, cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	topLevel.AddCommand(cmd)
}

// showDocuments lists what the configured backend holds without loading
// or seeding the tracker.
func showDocuments(w io.Writer, cfg config.Config) error {
	b, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer b.Close()

	infos, err := store.List(b)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	if len(infos) == 0 {
		fmt.Fprintln(w, "no stored documents")
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DOCUMENT", "BYTES", "UPDATED")
	for _, info := range infos {
		tbl.AddRow(info.Key, info.Size, info.UpdatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w, tbl)
	return nil
}
