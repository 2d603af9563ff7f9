package slack

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const maxBodyLog = 4096

// loggingTransport records status and body of every Web API response.
type loggingTransport struct {
	next http.RoundTripper
}

func newLoggingTransport(next http.RoundTripper) *loggingTransport {
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		slog.WarnContext(req.Context(), "Slack API request failed", "path", req.URL.Path, "error", err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read slack response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	logged := body
	if len(logged) > maxBodyLog {
		logged = logged[:maxBodyLog]
	}
	slog.InfoContext(req.Context(), "Slack API response", "path", req.URL.Path, "status_code", resp.StatusCode, "body", string(logged))

	return resp, nil
}
