package dsl

import (
	"context"
	"reflect"
	"strconv"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
	"github.com/reoring/formskema/rules"
)

// ArraySchema validates every element against one element schema, then runs
// whole-array rules over the element outputs.
type ArraySchema[E any] struct {
	elem  formskema.Schema[E]
	rules []rules.Rule[[]E]
}

var _ formskema.Schema[[]string] = (*ArraySchema[string])(nil)

// Array returns an array schema with the given element schema.
func Array[E any](elem formskema.Schema[E]) *ArraySchema[E] {
	return &ArraySchema[E]{elem: elem}
}

// Min requires at least n elements (too_few).
func (a *ArraySchema[E]) Min(n int, msg string) *ArraySchema[E] {
	return a.Rule(rules.MinItems[E](n, msg))
}

// Max allows at most n elements (too_many).
func (a *ArraySchema[E]) Max(n int, msg string) *ArraySchema[E] {
	return a.Rule(rules.MaxItems[E](n, msg))
}

// Rule appends whole-array rules. They run in order, and only when every
// element passed.
func (a *ArraySchema[E]) Rule(rs ...rules.Rule[[]E]) *ArraySchema[E] {
	a.rules = append(a.rules, rs...)
	return a
}

// Refine appends a whole-array predicate.
func (a *ArraySchema[E]) Refine(pred func([]E) bool, msg string) *ArraySchema[E] {
	return a.Rule(rules.Refine(pred, msg))
}

func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	if v == nil {
		return nil, formskema.Issues{{Code: formskema.CodeRequired, Message: messages.T(formskema.CodeRequired, nil)}}
	}
	items, ok := sliceItems(v)
	if !ok {
		params := map[string]any{"expected": "array"}
		return nil, formskema.Issues{{Code: formskema.CodeInvalidType, Message: messages.T(formskema.CodeInvalidType, params), Params: params}}
	}
	out := make([]E, 0, len(items))
	var iss formskema.Issues
	for i, it := range items {
		ev, err := a.elem.Parse(ctx, it)
		if err != nil {
			iss = formskema.AppendIssues(iss, formskema.Rebase(strconv.Itoa(i), formskema.ToIssues(err))...)
			if formskema.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	o := rules.Fold(out, a.rules...)
	if !o.Passed() {
		return nil, formskema.Issues{o.Issue()}
	}
	return o.Value(), nil
}

func (a *ArraySchema[E]) Shape() formskema.Shape { return formskema.ShapeArray }

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "array"}
	if a.elem != nil {
		es, err := a.elem.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Items = es
	}
	for _, r := range a.rules {
		r.Annotate(s)
	}
	return s, nil
}

func (a *ArraySchema[E]) adapter() AnyAdapter { return SchemaOf[[]E](a) }

// sliceItems flattens any slice or array value into []any.
func sliceItems(v any) ([]any, bool) {
	if xs, ok := v.([]any); ok {
		return xs, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
