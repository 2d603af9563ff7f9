package httpserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/moodreact/internal/adapter/slack"
	"github.com/pscheid92/moodreact/internal/platform/correlation"
	apperrors "github.com/pscheid92/moodreact/internal/platform/errors"
)

// retryNumHeader is set by Slack on redelivered events.
const retryNumHeader = "X-Slack-Retry-Num"

// handleSlackEvents receives Events API callbacks. The reply is plain text:
// the challenge, "ok", or empty for ignored events.
func (s *Server) handleSlackEvents(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.ValidationError("failed to read request body", err)
	}

	env, err := slack.DecodeEnvelope(body)
	if err != nil {
		return apperrors.ValidationError("malformed event payload", err)
	}

	if err := s.verifier.Verify(env); err != nil {
		return apperrors.UnauthorizedError(err.Error()).WithContext("event_id", env.EventID)
	}

	ctx := c.Request().Context()
	if env.EventID != "" {
		ctx = correlation.WithAttrs(ctx, slog.String("event_id", env.EventID))
	}
	if retry := c.Request().Header.Get(retryNumHeader); retry != "" {
		ctx = correlation.WithAttrs(ctx, slog.String("slack_retry", retry))
	}

	reply, err := s.events.Handle(ctx, env)
	if err != nil {
		return err
	}

	if err := c.String(http.StatusOK, reply); err != nil {
		return fmt.Errorf("failed to write event reply: %w", err)
	}
	return nil
}
