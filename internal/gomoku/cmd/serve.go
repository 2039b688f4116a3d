package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jaminalder/codex-gomoku/internal/app"
	"github.com/jaminalder/codex-gomoku/internal/config"
	"github.com/jaminalder/codex-gomoku/internal/web"
)

const shutdownTimeout = 5 * time.Second

// gomoku serve
func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game in the browser",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts a local web server where any number of
			tables can be opened. Both colours are played from the same
			browser window and every open view of a table updates live.

			The address is taken from GOMOKU_HOST and GOMOKU_PORT unless
			--host or --port is given. LOG_LEVEL sets the log level and
			GOMOKU_HEARTBEAT the keep-alive interval of the event stream.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flag("host").Changed {
				cfg.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flag("port").Changed {
				cfg.Port, _ = cmd.Flags().GetString("port")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logrus.StandardLogger())
		},
	}

	cmd.Flags().String("host", "", "Host to listen on")
	cmd.Flags().String("port", "", "Port to listen on")

	return cmd
}

func serve(ctx context.Context, cfg *config.ServerConfig, log logrus.FieldLogger) error {
	svc := app.NewService(app.WithLogger(log))
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           web.NewServer(svc, web.WithHeartbeat(cfg.Heartbeat), web.WithLogger(log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	log.WithField("addr", "http://"+ln.Addr().String()).Info("listening")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
