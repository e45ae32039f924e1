package rules

import (
	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// MinItems fails when the collection has fewer than n elements.
func MinItems[E any](n int, msg string) Rule[[]E] {
	return New("minItems", formskema.CodeTooFew, msg, func(xs []E) bool { return len(xs) >= n }).
		With("min", n).Annotated(func(s *js.Schema) { s.MinItems = js.Int(n) })
}

// MaxItems fails when the collection has more than n elements.
func MaxItems[E any](n int, msg string) Rule[[]E] {
	return New("maxItems", formskema.CodeTooMany, msg, func(xs []E) bool { return len(xs) <= n }).
		With("max", n).Annotated(func(s *js.Schema) { s.MaxItems = js.Int(n) })
}

// Some fails unless at least one element satisfies pred.
func Some[E any](pred func(E) bool, msg string) Rule[[]E] {
	return New("some", formskema.CodeCustom, msg, func(xs []E) bool {
		for _, x := range xs {
			if pred(x) {
				return true
			}
		}
		return false
	})
}

// Every fails unless all elements satisfy pred. An empty collection passes.
func Every[E any](pred func(E) bool, msg string) Rule[[]E] {
	return New("every", formskema.CodeCustom, msg, func(xs []E) bool {
		for _, x := range xs {
			if !pred(x) {
				return false
			}
		}
		return true
	})
}

// UniqueBy fails when two elements share the same key.
func UniqueBy[E any, K comparable](key func(E) K, msg string) Rule[[]E] {
	return New("uniqueBy", formskema.CodeUniqueness, msg, func(xs []E) bool {
		seen := make(map[K]struct{}, len(xs))
		for _, x := range xs {
			k := key(x)
			if _, dup := seen[k]; dup {
				return false
			}
			seen[k] = struct{}{}
		}
		return true
	})
}

// First replaces a collection by its first element. Pair it with MinItems(1)
// or Pipe's own emptiness check; on an empty slice it fails with too_few.
func First[E any](msg string) func([]E) (E, error) {
	return func(xs []E) (E, error) {
		if len(xs) == 0 {
			var zero E
			return zero, formskema.Issues{{Code: formskema.CodeTooFew, Message: msgOr(msg, formskema.CodeTooFew, map[string]any{"min": 1}), Params: map[string]any{"min": 1}}}
		}
		return xs[0], nil
	}
}
