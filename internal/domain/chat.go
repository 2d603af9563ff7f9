package domain

import "context"

// ChatPlatform is the outbound surface of the chat platform.
// Implementations wrap every refusal the platform answers with (API error,
// non-200 status, rate limit) in ErrRejected; other errors mean no answer arrived.
type ChatPlatform interface {
	AddReaction(ctx context.Context, channel, timestamp, emoji string) error
	PostMessage(ctx context.Context, channel, text string) error
}
