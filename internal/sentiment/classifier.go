package sentiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pscheid92/moodreact/internal/domain"
)

// magnitudeThreshold separates "high" from "low" classes. A magnitude equal to
// the threshold is low.
const magnitudeThreshold = 1.0

// ClassOf maps a (score, magnitude) pair to its class.
// Zero score counts as positive.
func ClassOf(s domain.Sentiment) domain.SentimentClass {
	high := s.Magnitude > magnitudeThreshold
	if s.Score >= 0 {
		if high {
			return domain.PositiveHigh
		}
		return domain.PositiveLow
	}
	if high {
		return domain.NegativeHigh
	}
	return domain.NegativeLow
}

type Classifier struct {
	analyzer domain.SentimentAnalyzer
}

func NewClassifier(analyzer domain.SentimentAnalyzer) *Classifier {
	return &Classifier{analyzer: analyzer}
}

// Classify scores text with the analysis service and returns its class.
// Analyzer errors are returned unchanged apart from wrapping.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.SentimentClass, error) {
	s, err := c.analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		return "", fmt.Errorf("analyze sentiment: %w", err)
	}

	class := ClassOf(s)
	slog.InfoContext(ctx, "Sentiment analyzed", "score", s.Score, "magnitude", s.Magnitude, "class", class)
	return class, nil
}
