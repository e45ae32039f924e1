package dsl

import (
	"context"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/rules"
)

// PipeSchema parses with one schema, converts the result to another type and
// applies rules on the new type. A typical use turns a file list into the
// single file a form field stands for.
type PipeSchema[A, B any] struct {
	from  formskema.Schema[A]
	fn    func(A) (B, error)
	rules []rules.Rule[B]
}

var _ formskema.Schema[formskema.File] = (*PipeSchema[[]formskema.File, formskema.File])(nil)

// Pipe returns a schema that runs from, then fn, then the rules added with
// Rule. An Issues error from fn is reported as is; any other error becomes a
// parse_error.
func Pipe[A, B any](from formskema.Schema[A], fn func(A) (B, error)) *PipeSchema[A, B] {
	return &PipeSchema[A, B]{from: from, fn: fn}
}

// Rule appends rules over the converted value.
func (p *PipeSchema[A, B]) Rule(rs ...rules.Rule[B]) *PipeSchema[A, B] {
	p.rules = append(p.rules, rs...)
	return p
}

func (p *PipeSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	a, err := p.from.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	b, err := p.fn(a)
	if err != nil {
		return zero, formskema.ToIssues(err)
	}
	o := rules.Fold(b, p.rules...)
	if !o.Passed() {
		return zero, formskema.Issues{o.Issue()}
	}
	return o.Value(), nil
}

// Shape reports the shape of the input schema.
func (p *PipeSchema[A, B]) Shape() formskema.Shape { return p.from.Shape() }

// JSONSchema describes the accepted input, which is the input of from.
func (p *PipeSchema[A, B]) JSONSchema() (*js.Schema, error) { return p.from.JSONSchema() }

func (p *PipeSchema[A, B]) adapter() AnyAdapter { return SchemaOf[B](p) }
