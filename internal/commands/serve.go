package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taxtracker/taxtracker/internal/logging"
	"github.com/taxtracker/taxtracker/internal/web"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker form in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm()
			if err != nil {
				return err
			}

			srv, err := web.NewServer(a.cfg.Server.Addr, f, web.Options{
				RateLimit: a.cfg.Server.RateLimit,
				Burst:     a.cfg.Server.Burst,
				Logger:    logging.Component(a.log, "web"),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")

	return cmd
}
