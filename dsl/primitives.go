package dsl

import (
	"context"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
	"github.com/reoring/formskema/rules"
)

// Primitive is a scalar schema node: a type conversion followed by an ordered
// rule chain. Build it once, then share it.
type Primitive[T any] struct {
	kind     string
	conv     func(any) (T, bool)
	coerce   func(any) (T, bool)
	coerced  bool
	rules    []rules.Rule[T]
	schema   func(coerced bool) *js.Schema
	required string
	invalid  string
}

var _ formskema.Schema[string] = (*Primitive[string])(nil)

// String accepts Go strings.
func String() *Primitive[string] {
	return &Primitive[string]{kind: "string", conv: asString, coerce: coerceString, schema: scalarSchema("string", "number", "boolean")}
}

// Number accepts float and integer kinds and json.Number; output is float64.
// NaN and infinities are rejected.
func Number() *Primitive[float64] {
	return &Primitive[float64]{kind: "number", conv: asNumber, coerce: coerceNumber, schema: scalarSchema("number", "string")}
}

// Bool accepts Go bools.
func Bool() *Primitive[bool] {
	return &Primitive[bool]{kind: "boolean", conv: asBool, coerce: coerceBool, schema: scalarSchema("boolean", "string")}
}

// File accepts formskema.File, *formskema.File, *multipart.FileHeader or a
// {"name","size","type"} map.
func File() *Primitive[formskema.File] {
	return &Primitive[formskema.File]{kind: "file", conv: asFile, coerce: asFile, schema: func(bool) *js.Schema { return fileSchema() }}
}

// FileList accepts one file-like value or a list of them; output is always a
// slice.
func FileList() *Primitive[[]formskema.File] {
	return &Primitive[[]formskema.File]{kind: "file list", conv: asFileList, coerce: asFileList, schema: func(bool) *js.Schema {
		return &js.Schema{OneOf: []*js.Schema{fileSchema(), {Type: "array", Items: fileSchema()}}}
	}}
}

// Rule appends rules to the chain. They run in order after conversion.
func (p *Primitive[T]) Rule(rs ...rules.Rule[T]) *Primitive[T] {
	p.rules = append(p.rules, rs...)
	return p
}

// Coerce enables conversion from the string forms of the kind (for example
// "7" for a number) before any rule runs.
func (p *Primitive[T]) Coerce() *Primitive[T] { p.coerced = true; return p }

// RequiredMessage overrides the message reported for a missing value.
func (p *Primitive[T]) RequiredMessage(msg string) *Primitive[T] { p.required = msg; return p }

// TypeMessage overrides the message reported when conversion fails.
func (p *Primitive[T]) TypeMessage(msg string) *Primitive[T] { p.invalid = msg; return p }

func (p *Primitive[T]) Parse(_ context.Context, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, formskema.Issues{{Code: formskema.CodeRequired, Message: orDefault(p.required, formskema.CodeRequired, nil)}}
	}
	conv := p.conv
	if p.coerced {
		conv = p.coerce
	}
	t, ok := conv(v)
	if !ok {
		params := map[string]any{"expected": p.kind}
		return zero, formskema.Issues{{Code: formskema.CodeInvalidType, Message: orDefault(p.invalid, formskema.CodeInvalidType, params), Params: params}}
	}
	o := rules.Fold(t, p.rules...)
	if !o.Passed() {
		return zero, formskema.Issues{o.Issue()}
	}
	return o.Value(), nil
}

func (p *Primitive[T]) Shape() formskema.Shape { return formskema.ShapePrimitive }

func (p *Primitive[T]) JSONSchema() (*js.Schema, error) {
	s := p.schema(p.coerced)
	for _, r := range p.rules {
		r.Annotate(s)
	}
	return s, nil
}

func (p *Primitive[T]) adapter() AnyAdapter { return SchemaOf[T](p) }

// scalarSchema exports the strict type, or a oneOf of the accepted input
// types when coercion is on. Rule keywords apply to the matching type only.
func scalarSchema(typ string, coercible ...string) func(bool) *js.Schema {
	return func(coerced bool) *js.Schema {
		if !coerced {
			return &js.Schema{Type: typ}
		}
		s := &js.Schema{OneOf: []*js.Schema{{Type: typ}}}
		for _, c := range coercible {
			if c != typ {
				s.OneOf = append(s.OneOf, &js.Schema{Type: c})
			}
		}
		return s
	}
}

func fileSchema() *js.Schema {
	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"name": {Type: "string", MinLength: js.Int(1)},
			"size": {Type: "integer", Minimum: js.Float(0)},
			"type": {Type: "string"},
		},
		Required: []string{"name", "size"},
	}
}

func orDefault(msg, code string, params map[string]any) string {
	if msg != "" {
		return msg
	}
	return messages.T(code, params)
}
