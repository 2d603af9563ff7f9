package correlation

import (
	"bytes"
	"context"
	"encoding/hex"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsEightHexChars(t *testing.T) {
	id := NewID()
	require.Len(t, id, 8)

	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestNewID_Unique(t *testing.T) {
	ids := make(map[string]struct{}, 100)
	for range 100 {
		ids[NewID()] = struct{}{}
	}
	assert.Len(t, ids, 100)
}

func TestWithID_and_ID_Roundtrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc12345")
	id, ok := ID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc12345", id)
}

func TestID_Missing(t *testing.T) {
	id, ok := ID(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestID_EmptyString(t *testing.T) {
	ctx := WithID(context.Background(), "")
	_, ok := ID(ctx)
	assert.False(t, ok)
}

func TestHandler_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx := WithID(context.Background(), "test1234")
	logger.InfoContext(ctx, "classified", "class", "positive_low")

	output := buf.String()
	assert.Contains(t, output, "correlation_id=test1234")
	assert.Contains(t, output, "class=positive_low")
}

func TestHandler_NoCorrelationID_WhenMissing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "no correlation")

	assert.NotContains(t, buf.String(), "correlation_id")
}

func TestHandler_WithGroup_PreservesCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil))).WithGroup("slack")

	ctx := WithID(context.Background(), "grp12345")
	logger.InfoContext(ctx, "posted", "channel", "C1")

	output := buf.String()
	assert.Contains(t, output, "correlation_id=grp12345")
	assert.Contains(t, output, "slack.channel=C1")
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc12345", true},
		{"Root-1_x", true},
		{NewID(), true},
		{"", false},
		{"has space", false},
		{"line\nbreak", false},
		{"quote\"d", false},
		{strings.Repeat("a", 64), true},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}

func TestWithAttrs_LoggedWithRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req00001")
	ctx = WithAttrs(ctx, slog.String("event_id", "Ev01"))
	logger.InfoContext(ctx, "reacted")

	output := buf.String()
	assert.Contains(t, output, "correlation_id=req00001")
	assert.Contains(t, output, "event_id=Ev01")
}

func TestWithAttrs_ParentUnaffected(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	parent := WithAttrs(context.Background(), slog.String("a", "1"))
	childOne := WithAttrs(parent, slog.String("b", "2"))
	_ = WithAttrs(parent, slog.String("c", "3"))

	logger.InfoContext(parent, "parent")
	assert.NotContains(t, buf.String(), "b=2")

	buf.Reset()
	logger.InfoContext(childOne, "child")
	assert.Contains(t, buf.String(), "a=1 b=2")
	assert.NotContains(t, buf.String(), "c=3")
}

func TestWithID_KeepsAttrs(t *testing.T) {
	ctx := WithAttrs(context.Background(), slog.String("event_id", "Ev9"))
	ctx = WithID(ctx, "later001")

	var buf bytes.Buffer
	slog.New(NewHandler(slog.NewTextHandler(&buf, nil))).InfoContext(ctx, "x")

	assert.Contains(t, buf.String(), "correlation_id=later001")
	assert.Contains(t, buf.String(), "event_id=Ev9")
}
