// Package slack adapts the Slack Web API and Events API to the domain ports.
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/pscheid92/moodreact/internal/domain"
	apperrors "github.com/pscheid92/moodreact/internal/platform/errors"
)

const serviceName = "slack"

// API is the subset of *slack.Client the bot needs.
type API interface {
	AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type Client struct {
	api API
}

// NewClient builds a Web API client for token against apiURL
// (must end with a slash, e.g. "https://slack.com/api/").
func NewClient(token, apiURL string, timeout time.Duration) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newLoggingTransport(http.DefaultTransport),
	}
	api := slack.New(token, slack.OptionAPIURL(apiURL), slack.OptionHTTPClient(httpClient))
	return NewClientWithAPI(api)
}

func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// AddReaction implements domain.ChatPlatform.
func (c *Client) AddReaction(ctx context.Context, channel, timestamp, emoji string) error {
	err := c.api.AddReactionContext(ctx, emoji, slack.ItemRef{Channel: channel, Timestamp: timestamp})
	if err != nil {
		return classify("reactions.add", err).
			WithContext("channel", channel).
			WithContext("emoji", emoji)
	}
	return nil
}

// PostMessage implements domain.ChatPlatform.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return classify("chat.postMessage", err).WithContext("channel", channel)
	}
	return nil
}

// classify separates answers from the platform ("ok": false, a non-200
// status, rate limiting) from transport failures where no answer arrived.
// Answers wrap domain.ErrRejected.
func classify(method string, err error) *apperrors.Error {
	var (
		apiErr     slack.SlackErrorResponse
		statusErr  slack.StatusCodeError
		limitedErr *slack.RateLimitedError
	)
	switch {
	case errors.As(err, &apiErr):
		return apperrors.RemoteServiceError(serviceName, method+" rejected", fmt.Errorf("%w: %s", domain.ErrRejected, apiErr.Err))
	case errors.As(err, &statusErr):
		return apperrors.RemoteServiceError(serviceName, method+" rejected", fmt.Errorf("%w: %s", domain.ErrRejected, statusErr.Status)).
			WithContext("status", statusErr.Code)
	case errors.As(err, &limitedErr):
		return apperrors.RemoteServiceError(serviceName, method+" rejected", fmt.Errorf("%w: rate limited", domain.ErrRejected)).
			WithContext("retry_after", limitedErr.RetryAfter.String())
	}
	return apperrors.RemoteServiceError(serviceName, method+" failed", err)
}
