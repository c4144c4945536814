package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sadopc/dualtrack/internal/api"
)

func addServe(topLevel *cobra.Command) {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only JSON analytics on a local address.",
		Example: `
dualtrack serve
curl localhost:8087/api/breakdown?period=week
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			if addr == "" {
				addr = e.cfg.ServeAddr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, addr, api.NewHandler(e.sess, e.log, e.cfg.SeriesDays))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default serve_addr)")

	topLevel.AddCommand(cmd)
}
