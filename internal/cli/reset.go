package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func addReset(topLevel *cobra.Command) {
	var yes, categories bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all tracked data and start again from the sample data.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset erases everything; rerun with --yes to confirm")
			}
			e, err := openEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			e.sess.Reset()
			if categories {
				e.cats.Clear()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tracker reset to sample data")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	cmd.Flags().BoolVar(&categories, "categories", false, "also remove custom categories")

	topLevel.AddCommand(cmd)
}
