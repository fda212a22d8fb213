package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/acgh213/peoplefinder/internal/search"
	"github.com/acgh213/peoplefinder/internal/session"
	"github.com/acgh213/peoplefinder/internal/web"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Override PORT",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, client, err := setup(c)
			if err != nil {
				return err
			}
			if port := c.String("port"); port != "" {
				cfg.Port = port
			}

			sessions := session.NewStore(cfg.SessionTTL, func() *search.Controller {
				return search.NewController(client)
			})

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			go sessions.RunCleanup(ctx, time.Minute)

			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           web.NewRouter(cfg, sessions, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("server started", "address", server.Addr, "env", cfg.Env, "api", cfg.APIBaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutdown signal received, draining connections")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", "error", err)
				return err
			}
			logger.Info("graceful shutdown complete")
			return nil
		},
	}
}
