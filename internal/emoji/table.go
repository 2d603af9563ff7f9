// Package emoji holds the static class-to-emoji table and random selection from it.
package emoji

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/spf13/viper"

	"github.com/pscheid92/moodreact/internal/domain"
	apperrors "github.com/pscheid92/moodreact/internal/platform/errors"
)

// Table maps each sentiment class to its emoji identifiers.
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	entries map[domain.SentimentClass][]string
	intn    func(n int) int
}

// Option configures a Table.
type Option func(*Table)

// WithRand replaces the uniform random source used by Pick.
func WithRand(intn func(n int) int) Option {
	return func(t *Table) { t.intn = intn }
}

// NewTable builds a table from raw entries. Every class must be present and
// no other keys are allowed. Lists are copied.
func NewTable(raw map[string][]string, opts ...Option) (*Table, error) {
	entries := make(map[domain.SentimentClass][]string, len(domain.SentimentClasses))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		class, err := domain.ParseSentimentClass(k)
		if err != nil {
			return nil, apperrors.ConfigurationError("emoji table has unknown class", err).WithContext("key", k)
		}
		entries[class] = slices.Clone(raw[k])
	}

	for _, class := range domain.SentimentClasses {
		if _, ok := entries[class]; !ok {
			return nil, apperrors.ConfigurationError(fmt.Sprintf("emoji table is missing class %q", class), nil)
		}
		if len(entries[class]) == 0 {
			slog.Warn("Emoji table has no entries for class, reactions for it will fail", "class", class)
		}
	}

	t := &Table{entries: entries, intn: rand.IntN}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Load reads a table from a JSON, YAML or TOML file; the format follows the
// file extension.
func Load(path string, opts ...Option) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.ConfigurationError("read emoji table", err).WithContext("path", path)
	}

	raw, err := decodeEntries(v.AllSettings())
	if err != nil {
		return nil, apperrors.ConfigurationError("decode emoji table", err).WithContext("path", path)
	}

	return NewTable(raw, opts...)
}

// decodeEntries requires every class to map to a list of non-empty strings.
// Scalars, numbers and nested tables are rejected rather than coerced.
// Keys arrive lowercased; viper matches them case-insensitively.
func decodeEntries(settings map[string]any) (map[string][]string, error) {
	raw := make(map[string][]string, len(settings))
	for key, value := range settings {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("class %q: want a list of emoji names, got %T", key, value)
		}
		names := make([]string, 0, len(list))
		for i, item := range list {
			name, ok := item.(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("class %q entry %d: want a non-empty emoji name, got %#v", key, i, item)
			}
			names = append(names, name)
		}
		raw[key] = names
	}
	return raw, nil
}

// Pick returns one emoji for class, chosen uniformly at random.
func (t *Table) Pick(class domain.SentimentClass) (string, error) {
	list, ok := t.entries[class]
	if !ok {
		return "", apperrors.LookupError("pick emoji", fmt.Errorf("%w: %q", domain.ErrUnknownClass, class))
	}
	if len(list) == 0 {
		return "", apperrors.LookupError("pick emoji", fmt.Errorf("%w: %q", domain.ErrEmptyEmojiList, class))
	}
	return list[t.intn(len(list))], nil
}

// Entries returns a copy of the emoji list for class.
func (t *Table) Entries(class domain.SentimentClass) []string {
	return slices.Clone(t.entries[class])
}

// Size returns the number of emoji per class.
func (t *Table) Size() map[domain.SentimentClass]int {
	sizes := make(map[domain.SentimentClass]int, len(t.entries))
	for class, list := range t.entries {
		sizes[class] = len(list)
	}
	return sizes
}

// EmptyClasses lists the classes that have no emoji, in canonical order.
func (t *Table) EmptyClasses() []domain.SentimentClass {
	var empty []domain.SentimentClass
	for _, class := range domain.SentimentClasses {
		if len(t.entries[class]) == 0 {
			empty = append(empty, class)
		}
	}
	return empty
}

// Check fails while any class has no emoji. It serves as a readiness probe.
func (t *Table) Check(context.Context) error {
	if empty := t.EmptyClasses(); len(empty) > 0 {
		return fmt.Errorf("no emoji configured for %v", empty)
	}
	return nil
}
