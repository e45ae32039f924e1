// Package rules provides reusable, composable checks and transforms over a
// single value. A Rule never sees a path; the schema node that applies it
// places the resulting issue in the Error Tree.
package rules

import (
	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
)

// Outcome is the result of applying a Rule: Pass carries the (possibly
// transformed) value, Fail carries exactly one issue.
type Outcome[T any] struct {
	value T
	issue *formskema.Issue
}

// Pass builds a passing Outcome.
func Pass[T any](v T) Outcome[T] { return Outcome[T]{value: v} }

// Fail builds a failing Outcome.
func Fail[T any](it formskema.Issue) Outcome[T] { return Outcome[T]{issue: &it} }

// Passed reports whether the rule accepted the value.
func (o Outcome[T]) Passed() bool { return o.issue == nil }

// Value returns the output value. It is the zero value for failures.
func (o Outcome[T]) Value() T { return o.value }

// Issue returns the failure, or the zero Issue when the outcome passed.
func (o Outcome[T]) Issue() formskema.Issue {
	if o.issue == nil {
		return formskema.Issue{}
	}
	return *o.issue
}

// Rule is an immutable named check over T. It fails with its own code and
// message, or passes with a replacement value.
type Rule[T any] struct {
	name     string
	code     string
	msg      string
	params   map[string]any
	fn       func(T) (T, bool)
	inner    func(T) Outcome[T] // composite rules report their members' issues
	annotate func(*js.Schema)
}

// New builds a rule from a predicate. An empty msg falls back to the default
// message for code.
func New[T any](name, code, msg string, pred func(T) bool) Rule[T] {
	return Rule[T]{name: name, code: code, msg: msg, fn: func(v T) (T, bool) { return v, pred(v) }}
}

// Check builds a rule that may replace the value when it passes.
func Check[T any](name, code, msg string, fn func(T) (T, bool)) Rule[T] {
	return Rule[T]{name: name, code: code, msg: msg, fn: fn}
}

// Name returns the rule name recorded on issues.
func (r Rule[T]) Name() string { return r.name }

// Code returns the issue code reported on failure.
func (r Rule[T]) Code() string { return r.code }

// With returns a copy of r carrying an extra issue parameter.
func (r Rule[T]) With(key string, v any) Rule[T] {
	p := make(map[string]any, len(r.params)+1)
	for k, x := range r.params {
		p[k] = x
	}
	p[key] = v
	r.params = p
	return r
}

// Message returns the text reported on failure.
func (r Rule[T]) Message() string {
	if r.msg != "" {
		return r.msg
	}
	return messages.T(r.code, r.params)
}

// Annotated returns a copy of r that also decorates exported JSON Schemas.
func (r Rule[T]) Annotated(fn func(*js.Schema)) Rule[T] {
	prev := r.annotate
	r.annotate = func(s *js.Schema) {
		if prev != nil {
			prev(s)
		}
		fn(s)
	}
	return r
}

// Annotate applies the rule's JSON Schema keywords to s.
func (r Rule[T]) Annotate(s *js.Schema) {
	if r.annotate != nil && s != nil {
		r.annotate(s)
	}
}

// Apply runs the rule against v.
func (r Rule[T]) Apply(v T) Outcome[T] {
	if r.inner != nil {
		return r.inner(v)
	}
	if r.fn == nil {
		return Pass(v)
	}
	out, ok := r.fn(v)
	if !ok {
		return Fail[T](formskema.Issue{Code: r.code, Message: r.Message(), Params: r.params, Rule: r.name})
	}
	return Pass(out)
}

// Fold applies rules in order, feeding each rule the output of the previous
// one, and stops at the first failure.
func Fold[T any](v T, rs ...Rule[T]) Outcome[T] {
	for _, r := range rs {
		o := r.Apply(v)
		if !o.Passed() {
			return o
		}
		v = o.Value()
	}
	return Pass(v)
}

// ---------- Rule combinators ----------

// Chain composes rules into one: members run in order with short-circuit and
// the first failing member's issue is reported.
func Chain[T any](rs ...Rule[T]) Rule[T] {
	members := append([]Rule[T](nil), rs...)
	r := Rule[T]{name: "chain", code: formskema.CodeCustom}
	r.inner = func(v T) Outcome[T] { return Fold(v, members...) }
	r.annotate = func(s *js.Schema) {
		for _, m := range members {
			m.Annotate(s)
		}
	}
	return r
}

// Or passes with the output of the first member that passes. When every
// member fails, the first member's issue is reported.
func Or[T any](rs ...Rule[T]) Rule[T] {
	members := append([]Rule[T](nil), rs...)
	r := Rule[T]{name: "or", code: formskema.CodeCustom}
	r.inner = func(v T) Outcome[T] {
		var first *Outcome[T]
		for _, m := range members {
			o := m.Apply(v)
			if o.Passed() {
				return o
			}
			if first == nil {
				first = &o
			}
		}
		if first == nil {
			return Pass(v)
		}
		return *first
	}
	return r
}

func msgOr(msg, code string, params map[string]any) string {
	if msg != "" {
		return msg
	}
	return messages.T(code, params)
}
