package domain

// MessageEvent is the nested message record of an inbound webhook call.
type MessageEvent struct {
	Type      string
	UserID    string
	BotID     string
	Channel   string
	Timestamp string
	Text      string
}

// FromBot reports whether the automated-sender marker is present.
func (e *MessageEvent) FromBot() bool {
	return e != nil && e.BotID != ""
}

// Envelope is the outer webhook payload.
type Envelope struct {
	Type      string
	Token     string
	EventID   string
	Challenge *string
	Event     *MessageEvent
}

// IsChallenge reports whether the envelope is an endpoint-verification handshake.
func (e *Envelope) IsChallenge() bool {
	return e.Challenge != nil
}
