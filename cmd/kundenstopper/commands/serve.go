package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"kundenstopper/internal/app"
	handlers "kundenstopper/internal/http/handler"
	"kundenstopper/internal/http/middleware"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/otel"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			shutdownTracing, err := otel.Init(ctx, a.Log)
			if err != nil {
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTracing(sctx); err != nil {
					a.Log.Error("tracing_shutdown_failed", err, nil)
				}
			}()

			server, err := newServer(a, prometheus.NewRegistry())
			if err != nil {
				return err
			}

			if port == "" {
				port = a.Config.Port
			}
			addr := ":" + port

			errCh := make(chan error, 1)
			go func() {
				a.Log.Info("server_listening", logger.Fields{"addr": addr})
				errCh <- server.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.Log.Info("server_shutting_down", nil)
			if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			a.Log.Info("server_stopped", nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default: $PORT)")
	return cmd
}

// newServer builds the Fiber app with middleware and routes. Process and Go
// runtime collectors are registered on reg next to the request metrics.
func newServer(a *app.App, reg *prometheus.Registry) (*fiber.App, error) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	server := fiber.New(fiber.Config{
		AppName:               "kundenstopper",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             a.Config.MaxUploadBytes(),
		DisableStartupMessage: true,
	})

	server.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	server.Use(middleware.RequestID())
	server.Use(middleware.Logger(a.Log))
	server.Use(metrics.Handler())

	services := a.Services()
	services.Metrics = reg
	handlers.RegisterRoutes(server, services)

	return server, nil
}
