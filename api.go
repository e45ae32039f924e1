package formskema

import (
	"context"

	js "github.com/reoring/formskema/jsonschema"
)

// Shape tags the variant of a schema node.
type Shape uint8

const (
	ShapePrimitive Shape = iota + 1
	ShapeObject
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "unknown"
	}
}

// Schema is an immutable description of an expected value. Implementations
// live in the dsl package.
type Schema[T any] interface {
	// Parse converts and validates an untyped input into T, applying coercion,
	// rules and transforms. Validation failures are returned as Issues.
	Parse(ctx context.Context, v any) (T, error)

	// Shape reports whether the node is a primitive, object or array.
	Shape() Shape

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Validate runs s against v and returns a Result. It never panics on
// malformed input; every failure is reported through the Error Tree.
func Validate[T any](ctx context.Context, s Schema[T], v any) Result[T] {
	if s == nil {
		return Err[T](Issues{{Code: CodeParseError, Message: "nil schema"}})
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		return Err[T](ToIssues(err))
	}
	return Ok(out)
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, ok := SafeParse(ctx, s, v)
	return ok
}

// ---- Parse-time context options ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast parsing behavior:
// objects and arrays stop at the first failing member.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
