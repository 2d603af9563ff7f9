package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/moodreact/internal/adapter/metrics"
	"github.com/pscheid92/moodreact/internal/adapter/slack"
	"github.com/pscheid92/moodreact/internal/domain"
)

type mockEventHandler struct {
	handleFn func(ctx context.Context, env *domain.Envelope) (string, error)
	received []*domain.Envelope
}

func (m *mockEventHandler) Handle(ctx context.Context, env *domain.Envelope) (string, error) {
	m.received = append(m.received, env)
	if m.handleFn != nil {
		return m.handleFn(ctx, env)
	}
	return "ok", nil
}

type serverOption func(*Options)

func withHealthChecks(checks ...HealthCheck) serverOption {
	return func(o *Options) { o.HealthChecks = checks }
}

func withVerificationToken(token string) serverOption {
	return func(o *Options) { o.Verifier = slack.NewTokenVerifier(token) }
}

func withClock(clock clockwork.Clock) serverOption {
	return func(o *Options) { o.Clock = clock }
}

func newTestServer(t *testing.T, events eventHandler, opts ...serverOption) *Server {
	t.Helper()
	o := Options{
		Port:     "0",
		Events:   events,
		Registry: metrics.NewRegistry(),
		Clock:    clockwork.NewFakeClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return NewServer(o)
}

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func postEvent(srv *Server, body string) *httptest.ResponseRecorder {
	return serve(srv, http.MethodPost, "/slack/events", body)
}
