// Package serve provides the command that runs the HTTP API.
package serve

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/alerts"
	"github.com/agentstation/locallift/internal/server"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// EnvAPIKey holds the key clients must send when --auth is set.
const EnvAPIKey = "LOCALLIFT_API_KEY"

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server with WebSocket and SSE updates",
		Long: `Serve the catalog over HTTP.

Endpoints live under the path prefix (default /api/v1): businesses,
favorites, deals, stats, reviews, search and imports. Catalog changes
are streamed on /updates/ws (WebSocket) and /updates/stream (SSE).

With --auth every endpoint except health checks requires the key from
LOCALLIFT_API_KEY in the X-API-Key header.`,
		Example: `  locallift serve
  locallift serve --port 3000 --cors
  LOCALLIFT_API_KEY=secret locallift serve --auth --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd, app, cfg)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Bool("auth", false, "Require an API key (from "+EnvAPIKey+")")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache TTL")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, cfg server.Config) error {
	logger := app.Logger()

	client, err := app.Client()
	if err != nil {
		return err
	}
	srv, err := server.New(client, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv.Start()
	return serveUntilDone(cmd, srv.HTTPServer(), srv, logger)
}

// parseConfig reads the flags. HTTP_HOST and HTTP_PORT override them.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	f := cmd.Flags()
	cfg := server.DefaultConfig()

	cfg.Port, _ = f.GetInt("port")
	cfg.Host, _ = f.GetString("host")
	cfg.PathPrefix, _ = f.GetString("prefix")
	cfg.CORSEnabled, _ = f.GetBool("cors")
	cfg.CORSOrigins, _ = f.GetStringSlice("cors-origins")
	cfg.AuthEnabled, _ = f.GetBool("auth")
	cfg.AuthHeader, _ = f.GetString("auth-header")
	cfg.RateLimit, _ = f.GetInt("rate-limit")
	cfg.CacheTTL, _ = f.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = f.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = f.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = f.GetDuration("idle-timeout")
	cfg.APIKey = os.Getenv(EnvAPIKey)

	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	if env := os.Getenv("HTTP_HOST"); env != "" {
		cfg.Host = env
	}
	if env := os.Getenv("HTTP_PORT"); env != "" {
		port, err := parsePort(env)
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 1 and 65535")
	}
	return cfg, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", s, "must be between 1 and 65535")
	}
	return port, nil
}

// serveUntilDone runs httpServer until it fails or the command context
// is cancelled, then drains connections.
func serveUntilDone(cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	w := alerts.ForCommand(cmd)
	serverErr := make(chan error, 1)

	go func() {
		w.Info("API server listening on http://%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return errors.WrapResource("start", "server", httpServer.Addr, err)
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")

		// the parent context is already cancelled
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			return errors.WrapResource("shutdown", "server", httpServer.Addr, err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		w.Success("API server stopped")
		return nil
	}
}

