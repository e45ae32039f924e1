package formskema

// Result is the outcome of one validation call: either Ok with the transformed
// value, or Err with a non-empty ErrorTree. Exactly one side is populated.
type Result[T any] struct {
	value T
	errs  ErrorTree
	ok    bool
}

// Ok builds a successful Result.
func Ok[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Err builds a failed Result from issues. An empty issue set still yields a
// failure at the root so the invariant "Err has entries" holds.
func Err[T any](iss Issues) Result[T] {
	if len(iss) == 0 {
		iss = Issues{{Code: CodeParseError, Message: "validation failed"}}
	}
	return Result[T]{errs: iss.Tree()}
}

// IsOk reports whether validation succeeded.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the transformed value and whether the Result is Ok.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Errors returns the Error Tree; it is empty for Ok results.
func (r Result[T]) Errors() ErrorTree { return r.errs }

// Unwrap returns the value, or the issues as an error.
func (r Result[T]) Unwrap() (T, error) {
	if r.ok {
		return r.value, nil
	}
	var zero T
	return zero, r.errs.All()
}
