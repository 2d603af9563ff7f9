package sentiment

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/pscheid92/moodreact/internal/domain"
	apperrors "github.com/pscheid92/moodreact/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, text string) (domain.Sentiment, error)
	texts     []string
}

func (m *mockAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (domain.Sentiment, error) {
	m.texts = append(m.texts, text)
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text)
	}
	return domain.Sentiment{}, nil
}

func returning(score, magnitude float64) *mockAnalyzer {
	return &mockAnalyzer{
		analyzeFn: func(context.Context, string) (domain.Sentiment, error) {
			return domain.Sentiment{Score: score, Magnitude: magnitude}, nil
		},
	}
}

func TestClassOf_Quadrants(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		magnitude float64
		want      domain.SentimentClass
	}{
		{"positive strong", 0.8, 2.0, domain.PositiveHigh},
		{"positive weak", 0.8, 0.4, domain.PositiveLow},
		{"negative strong", -0.6, 3.5, domain.NegativeHigh},
		{"negative weak", -0.6, 0.2, domain.NegativeLow},
		{"zero score is positive", 0.0, 1.5, domain.PositiveHigh},
		{"zero score and magnitude", 0.0, 0.0, domain.PositiveLow},
		{"positive at magnitude boundary is low", 0.3, 1.0, domain.PositiveLow},
		{"negative at magnitude boundary is low", -0.3, 1.0, domain.NegativeLow},
		{"just above boundary is high", 0.3, 1.0000001, domain.PositiveHigh},
		{"barely negative", -0.0001, 1.2, domain.NegativeHigh},
		{"extremes", 1.0, 100.0, domain.PositiveHigh},
		{"negative extreme", -1.0, 0.0, domain.NegativeLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassOf(domain.Sentiment{Score: tt.score, Magnitude: tt.magnitude}))
		})
	}
}

func TestClassOf_AlwaysValid(t *testing.T) {
	for score := -1.0; score <= 1.0; score += 0.25 {
		for magnitude := 0.0; magnitude <= 3.0; magnitude += 0.5 {
			assert.True(t, ClassOf(domain.Sentiment{Score: score, Magnitude: magnitude}).Valid())
		}
	}
}

func TestClassify_UsesAnalyzerResult(t *testing.T) {
	analyzer := returning(0.8, 2.0)
	c := NewClassifier(analyzer)

	class, err := c.Classify(context.Background(), "What a fantastic release!")

	require.NoError(t, err)
	assert.Equal(t, domain.PositiveHigh, class)
	assert.Equal(t, []string{"What a fantastic release!"}, analyzer.texts)
}

func TestClassify_ForwardsEmptyText(t *testing.T) {
	analyzer := returning(0, 0)
	c := NewClassifier(analyzer)

	class, err := c.Classify(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, domain.PositiveLow, class)
	assert.Equal(t, []string{""}, analyzer.texts)
}

func TestClassify_PropagatesRemoteError(t *testing.T) {
	remote := apperrors.RemoteServiceError("sentiment", "status 500", nil)
	analyzer := &mockAnalyzer{
		analyzeFn: func(context.Context, string) (domain.Sentiment, error) {
			return domain.Sentiment{}, remote
		},
	}
	c := NewClassifier(analyzer)

	class, err := c.Classify(context.Background(), "hello")

	require.Error(t, err)
	assert.Empty(t, class)
	assert.True(t, errors.Is(err, remote))
	assert.True(t, apperrors.IsType(err, apperrors.TypeRemote))
}

func TestClassify_LogsScoreAndMagnitude(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := NewClassifier(returning(-0.4, 0.9)).Classify(context.Background(), "meh")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "score=-0.4")
	assert.Contains(t, out, "magnitude=0.9")
	assert.Contains(t, out, "class=negative_low")
}
