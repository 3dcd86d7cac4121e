// Package canon derives structural identity keys for generated values.
package canon

import (
	json "github.com/goccy/go-json"
)

// Key returns a string that is equal for two values exactly when they are
// structurally equal as JSON: map keys are sorted and numbers compare by
// their JSON text.
func Key(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set is an insertion-ordered set of values keyed by structural equality.
type Set struct {
	seen  map[string]struct{}
	items []any
}

func NewSet(capacity int) *Set {
	return &Set{seen: make(map[string]struct{}, capacity), items: make([]any, 0, capacity)}
}

// Add inserts v unless a structurally equal value is present. It reports
// whether v was inserted.
func (s *Set) Add(v any) (bool, error) {
	k, err := Key(v)
	if err != nil {
		return false, err
	}
	if _, dup := s.seen[k]; dup {
		return false, nil
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, v)
	return true, nil
}

func (s *Set) Len() int { return len(s.items) }

// Items returns the values in insertion order.
func (s *Set) Items() []any { return s.items }
