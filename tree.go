package formskema

import (
	json "github.com/goccy/go-json"
)

// ErrorTree groups issues by dotted path. Paths keep the order in which they
// were first reported, which follows schema declaration order. The zero value
// is an empty tree ready for use.
type ErrorTree struct {
	order   []string
	entries map[string][]Issue
}

// Add records an issue under its path.
func (t *ErrorTree) Add(it Issue) {
	if t.entries == nil {
		t.entries = make(map[string][]Issue)
	}
	if _, ok := t.entries[it.Path]; !ok {
		t.order = append(t.order, it.Path)
	}
	t.entries[it.Path] = append(t.entries[it.Path], it)
}

// Len returns the number of distinct paths with at least one issue.
func (t ErrorTree) Len() int { return len(t.order) }

// Empty reports whether no issue was recorded.
func (t ErrorTree) Empty() bool { return len(t.order) == 0 }

// Paths returns the failing paths in report order.
func (t ErrorTree) Paths() []string { return append([]string(nil), t.order...) }

// Has reports whether path has at least one issue.
func (t ErrorTree) Has(path string) bool {
	_, ok := t.entries[path]
	return ok
}

// Issues returns the issues recorded at path.
func (t ErrorTree) Issues(path string) []Issue { return t.entries[path] }

// Messages returns the messages recorded at path, in report order.
func (t ErrorTree) Messages(path string) []string {
	its := t.entries[path]
	if len(its) == 0 {
		return nil
	}
	out := make([]string, len(its))
	for i, it := range its {
		out[i] = it.Message
	}
	return out
}

// First returns the first message at path, or "" if the path passed. This is
// what a form renders next to an input.
func (t ErrorTree) First(path string) string {
	if its := t.entries[path]; len(its) > 0 {
		return its[0].Message
	}
	return ""
}

// All flattens the tree back into Issues in report order.
func (t ErrorTree) All() Issues {
	var out Issues
	for _, p := range t.order {
		out = append(out, t.entries[p]...)
	}
	return out
}

// Map returns a plain path -> messages map.
func (t ErrorTree) Map() map[string][]string {
	m := make(map[string][]string, len(t.order))
	for _, p := range t.order {
		m[p] = t.Messages(p)
	}
	return m
}

// MarshalJSON renders {"path": ["message", ...]}.
func (t ErrorTree) MarshalJSON() ([]byte, error) { return json.Marshal(t.Map()) }
