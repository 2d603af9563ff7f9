// Package language calls the Google Cloud Natural Language analyzeSentiment endpoint.
package language

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pscheid92/moodreact/internal/domain"
	apperrors "github.com/pscheid92/moodreact/internal/platform/errors"
	"github.com/pscheid92/moodreact/internal/platform/version"
)

const serviceName = "sentiment"

// maxBodyLog bounds how much of an upstream response body is logged.
const maxBodyLog = 4096

type analyzeRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

type document struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type analyzeResponse struct {
	DocumentSentiment *struct {
		Score     *float64 `json:"score"`
		Magnitude *float64 `json:"magnitude"`
	} `json:"documentSentiment"`
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a client for endpoint authenticated by apiKey.
// A zero timeout leaves the HTTP client without a deadline.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// AnalyzeSentiment implements domain.SentimentAnalyzer.
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (domain.Sentiment, error) {
	payload, err := json.Marshal(analyzeRequest{
		Document:     document{Type: "PLAIN_TEXT", Content: text},
		EncodingType: "UTF8",
	})
	if err != nil {
		return domain.Sentiment{}, apperrors.InternalError("encode sentiment request", err)
	}

	reqURL, err := c.requestURL()
	if err != nil {
		return domain.Sentiment{}, apperrors.InternalError("build sentiment url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return domain.Sentiment{}, apperrors.InternalError("build sentiment request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key
		return domain.Sentiment{}, apperrors.RemoteServiceError(serviceName, "sentiment request failed", redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Sentiment{}, apperrors.RemoteServiceError(serviceName, "read sentiment response", err).
			WithContext("status", resp.StatusCode)
	}

	slog.InfoContext(ctx, "Cloud Natural Language API response", "status_code", resp.StatusCode, "body", truncate(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Sentiment{}, apperrors.RemoteServiceError(serviceName, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).
			WithContext("status", resp.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.Sentiment{}, apperrors.RemoteServiceError(serviceName, "decode sentiment response", err)
	}

	ds := parsed.DocumentSentiment
	if ds == nil || ds.Score == nil || ds.Magnitude == nil {
		return domain.Sentiment{}, apperrors.RemoteServiceError(serviceName, "response lacks documentSentiment.score or documentSentiment.magnitude", nil)
	}

	return domain.Sentiment{Score: *ds.Score, Magnitude: *ds.Magnitude}, nil
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func truncate(body []byte) string {
	if len(body) <= maxBodyLog {
		return string(body)
	}
	return string(body[:maxBodyLog]) + "...(truncated)"
}
