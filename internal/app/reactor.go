package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/moodreact/internal/domain"
)

// LongMessageWarning is posted to the channel when a message reaches the length threshold.
const LongMessageWarning = "The post is too long!"

// DefaultLongMessageThreshold is the message length, in characters, that triggers the warning.
const DefaultLongMessageThreshold = 180

// ReplyOK acknowledges a handled event.
const ReplyOK = "ok"

// Outcomes reported to the Recorder.
const (
	OutcomeChallenge = "challenge"
	OutcomeFiltered  = "filtered"
	OutcomeReacted   = "reacted"
	OutcomeFailed    = "failed"
)

// Outbound calls and their results reported to the Recorder.
const (
	CallReaction = "reaction"
	CallWarning  = "warning"

	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Recorder observes the reaction pipeline.
type Recorder interface {
	EventHandled(outcome string)
	ClassAssigned(class domain.SentimentClass)
	CallCompleted(call, result string)
	ObserveHandling(d time.Duration)
}

type Reactor struct {
	classifier    domain.SentimentClassifier
	picker        domain.EmojiPicker
	chat          domain.ChatPlatform
	recorder      Recorder
	clock         clockwork.Clock
	longThreshold int
}

// NewReactor wires the pipeline. A nil recorder disables metrics; a
// non-positive threshold falls back to DefaultLongMessageThreshold.
func NewReactor(classifier domain.SentimentClassifier, picker domain.EmojiPicker, chat domain.ChatPlatform, recorder Recorder, clock clockwork.Clock, longThreshold int) *Reactor {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if longThreshold <= 0 {
		longThreshold = DefaultLongMessageThreshold
	}
	return &Reactor{
		classifier:    classifier,
		picker:        picker,
		chat:          chat,
		recorder:      recorder,
		clock:         clock,
		longThreshold: longThreshold,
	}
}

// Handle processes one envelope and returns the reply for the platform:
// the challenge for a handshake, "" for a filtered event, ReplyOK otherwise.
//
// Classification and emoji errors abort before any outbound call. The reaction
// and the warning are attempted independently; platform rejections are only
// logged, other failures of either call are returned joined.
func (r *Reactor) Handle(ctx context.Context, env *domain.Envelope) (string, error) {
	start := r.clock.Now()
	defer func() { r.recorder.ObserveHandling(r.clock.Since(start)) }()

	if env.IsChallenge() {
		slog.InfoContext(ctx, "URL verification handshake", "type", env.Type)
		r.recorder.EventHandled(OutcomeChallenge)
		return *env.Challenge, nil
	}

	ev := env.Event
	if !ev.FromBot() {
		slog.DebugContext(ctx, "Ignoring event without bot marker")
		r.recorder.EventHandled(OutcomeFiltered)
		return "", nil
	}

	slog.InfoContext(ctx, "Event received", "bot_id", ev.BotID, "channel", ev.Channel, "ts", ev.Timestamp)

	class, err := r.classifier.Classify(ctx, ev.Text)
	if err != nil {
		r.recorder.EventHandled(OutcomeFailed)
		return "", fmt.Errorf("classify message: %w", err)
	}
	r.recorder.ClassAssigned(class)

	emoji, err := r.picker.Pick(class)
	if err != nil {
		r.recorder.EventHandled(OutcomeFailed)
		return "", fmt.Errorf("pick emoji for %s: %w", class, err)
	}

	var errs []error

	err = r.chat.AddReaction(ctx, ev.Channel, ev.Timestamp, emoji)
	errs = r.settle(ctx, CallReaction, err, errs, "emoji", emoji)

	if r.isLong(ev.Text) {
		err = r.chat.PostMessage(ctx, ev.Channel, LongMessageWarning)
		errs = r.settle(ctx, CallWarning, err, errs)
	}

	if len(errs) > 0 {
		r.recorder.EventHandled(OutcomeFailed)
		return "", errors.Join(errs...)
	}

	r.recorder.EventHandled(OutcomeReacted)
	return ReplyOK, nil
}

// settle records the result of an outbound call and collects surfacing errors.
func (r *Reactor) settle(ctx context.Context, call string, err error, errs []error, attrs ...any) []error {
	switch {
	case err == nil:
		r.recorder.CallCompleted(call, ResultOK)
		slog.InfoContext(ctx, "Chat call succeeded", append([]any{"call", call}, attrs...)...)
		return errs
	case errors.Is(err, domain.ErrRejected):
		r.recorder.CallCompleted(call, ResultRejected)
		slog.WarnContext(ctx, "Chat call rejected by platform", append([]any{"call", call, "error", err}, attrs...)...)
		return errs
	default:
		r.recorder.CallCompleted(call, ResultFailed)
		return append(errs, fmt.Errorf("%s: %w", call, err))
	}
}

// isLong counts characters, not bytes.
func (r *Reactor) isLong(text string) bool {
	return utf8.RuneCountInString(text) >= r.longThreshold
}

type nopRecorder struct{}

func (nopRecorder) EventHandled(string)                 {}
func (nopRecorder) ClassAssigned(domain.SentimentClass) {}
func (nopRecorder) CallCompleted(string, string)        {}
func (nopRecorder) ObserveHandling(time.Duration)       {}
