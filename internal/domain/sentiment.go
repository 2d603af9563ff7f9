package domain

import (
	"context"
	"fmt"
)

// SentimentClass summarizes polarity and intensity of a text.
type SentimentClass string

const (
	PositiveHigh SentimentClass = "positive_high"
	PositiveLow  SentimentClass = "positive_low"
	NegativeHigh SentimentClass = "negative_high"
	NegativeLow  SentimentClass = "negative_low"
)

// SentimentClasses lists every class in a stable order.
var SentimentClasses = []SentimentClass{PositiveHigh, PositiveLow, NegativeHigh, NegativeLow}

func (c SentimentClass) String() string { return string(c) }

// Valid reports whether c is one of the four known classes.
func (c SentimentClass) Valid() bool {
	switch c {
	case PositiveHigh, PositiveLow, NegativeHigh, NegativeLow:
		return true
	default:
		return false
	}
}

// ParseSentimentClass converts a label to a SentimentClass.
func ParseSentimentClass(s string) (SentimentClass, error) {
	c := SentimentClass(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
	return c, nil
}

// Sentiment is the raw document sentiment reported by the analysis service.
// Score is polarity in [-1, 1]; Magnitude is non-negative strength.
type Sentiment struct {
	Score     float64
	Magnitude float64
}

// SentimentAnalyzer scores a text document.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error)
}

// SentimentClassifier maps a text to one SentimentClass.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (SentimentClass, error)
}

// EmojiPicker chooses an emoji for a class.
type EmojiPicker interface {
	Pick(class SentimentClass) (string, error)
}
