// Package correlation tags log records with request-scoped identifiers.
package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const maxIDLength = 64

type contextKey struct{}

// scope is what a request carries into its log records.
type scope struct {
	id    string
	attrs []slog.Attr
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(contextKey{}).(scope)
	return s
}

// NewID generates an 8-character hex id taken from a random UUID.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Valid reports whether an id supplied by a caller is safe to adopt:
// 1 to 64 characters of letters, digits, '-' or '_'.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// WithID returns a context carrying id. Attributes already in ctx are kept.
func WithID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.id = id
	return context.WithValue(ctx, contextKey{}, s)
}

// ID extracts the correlation id from ctx, returning ("", false) if not present.
func ID(ctx context.Context) (string, bool) {
	s := scopeFrom(ctx)
	return s.id, s.id != ""
}

// WithAttrs returns a context whose log records also carry attrs.
// The parent context is not affected.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	s := scopeFrom(ctx)
	s.attrs = append(slices.Clip(s.attrs), attrs...)
	return context.WithValue(ctx, contextKey{}, s)
}

// Handler decorates records with the correlation id and scoped attributes
// found in the context.
type Handler struct {
	inner slog.Handler
}

func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	s := scopeFrom(ctx)
	if s.id != "" {
		r.AddAttrs(slog.String("correlation_id", s.id))
	}
	r.AddAttrs(s.attrs...)

	if err := h.inner.Handle(ctx, r); err != nil {
		return fmt.Errorf("correlation handler: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
