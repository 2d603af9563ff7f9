package slack

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slack-go/slack/slackevents"

	"github.com/pscheid92/moodreact/internal/domain"
)

var ErrTokenMismatch = errors.New("verification token mismatch")

// envelope mirrors the Events API outer payload. Challenge is a pointer so a
// present-but-empty challenge still counts as a handshake.
type envelope struct {
	Type      string           `json:"type"`
	Token     string           `json:"token"`
	EventID   string           `json:"event_id"`
	Challenge *string          `json:"challenge"`
	Event     *json.RawMessage `json:"event"`
}

// DecodeEnvelope parses an Events API request body. A missing or null event
// yields an envelope without Event.
func DecodeEnvelope(body []byte) (*domain.Envelope, error) {
	var raw envelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	env := &domain.Envelope{
		Type:      raw.Type,
		Token:     raw.Token,
		EventID:   raw.EventID,
		Challenge: raw.Challenge,
	}

	if raw.Challenge != nil || raw.Event == nil || string(*raw.Event) == "null" {
		return env, nil
	}

	var msg slackevents.MessageEvent
	if err := json.Unmarshal(*raw.Event, &msg); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	env.Event = &domain.MessageEvent{
		Type:      msg.Type,
		UserID:    msg.User,
		BotID:     msg.BotID,
		Channel:   msg.Channel,
		Timestamp: msg.TimeStamp,
		Text:      msg.Text,
	}
	return env, nil
}

// TokenVerifier checks the static verification token carried in envelopes.
// An empty expected token disables the check.
type TokenVerifier struct {
	comparator *slackevents.TokenComparator
}

func NewTokenVerifier(expected string) *TokenVerifier {
	if expected == "" {
		return &TokenVerifier{}
	}
	return &TokenVerifier{comparator: &slackevents.TokenComparator{VerificationToken: expected}}
}

func (v *TokenVerifier) Verify(env *domain.Envelope) error {
	if v == nil || v.comparator == nil {
		return nil
	}
	if !v.comparator.Verify(env.Token) {
		return ErrTokenMismatch
	}
	return nil
}
