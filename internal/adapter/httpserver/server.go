package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pscheid92/moodreact/internal/adapter/metrics"
	"github.com/pscheid92/moodreact/internal/adapter/slack"
	"github.com/pscheid92/moodreact/internal/domain"
)

type eventHandler interface {
	Handle(ctx context.Context, env *domain.Envelope) (string, error)
}

type Server struct {
	echo *echo.Echo
	port string

	events   eventHandler
	verifier *slack.TokenVerifier

	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

// Options carries the server's collaborators. Verifier and HealthChecks are optional.
type Options struct {
	Port         string
	Events       eventHandler
	Verifier     *slack.TokenVerifier
	Registry     *prometheus.Registry
	HealthChecks []HealthCheck
	Clock        clockwork.Clock
}

func NewServer(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:         e,
		port:         opts.Port,
		events:       opts.Events,
		verifier:     opts.Verifier,
		registry:     opts.Registry,
		httpMetrics:  metrics.NewHTTPMetrics(opts.Registry),
		healthChecks: opts.HealthChecks,
		clock:        clock,
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.port)
	if err := s.echo.Start(":" + s.port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
