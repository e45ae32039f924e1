package rules

import (
	"math"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// Refine fails when pred returns false; the value is passed through unchanged.
func Refine[T any](pred func(T) bool, msg string) Rule[T] {
	return New("refine", formskema.CodeCustom, msg, pred)
}

// Transform always passes and replaces the value with fn(value).
func Transform[T any](name string, fn func(T) T) Rule[T] {
	return Check(name, formskema.CodeCustom, "", func(v T) (T, bool) { return fn(v), true })
}

// Min fails when the number is below n.
func Min(n float64, msg string) Rule[float64] {
	return New("min", formskema.CodeTooSmall, msg, func(f float64) bool { return f >= n }).
		With("min", n).Annotated(func(s *js.Schema) { s.Minimum = js.Float(n) })
}

// Max fails when the number is above n.
func Max(n float64, msg string) Rule[float64] {
	return New("max", formskema.CodeTooBig, msg, func(f float64) bool { return f <= n }).
		With("max", n).Annotated(func(s *js.Schema) { s.Maximum = js.Float(n) })
}

// Integer fails when the number has a fractional part.
func Integer(msg string) Rule[float64] {
	return New("integer", formskema.CodeInvalidFormat, msg, func(f float64) bool { return f == math.Trunc(f) }).
		With("format", "integer").Annotated(func(s *js.Schema) { s.Type = "integer" })
}

// Sized is satisfied by file-like values.
type Sized interface{ ByteSize() int64 }

// MaxSize fails when the value is larger than n bytes.
func MaxSize[T Sized](n int64, msg string) Rule[T] {
	return New("maxSize", formskema.CodeTooBig, msg, func(v T) bool { return v.ByteSize() <= n }).
		With("maxBytes", n)
}
