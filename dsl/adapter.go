package dsl

import (
	"context"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// Node is anything an object field or a Nullable wrapper can hold. Every
// schema in this package is a Node; wrap other Schema[T] implementations
// with SchemaOf.
type Node interface {
	adapter() AnyAdapter
}

// AnyAdapter erases the output type of a Schema[T] so heterogeneous fields
// can live in one object.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
	shape      formskema.Shape
	orig       any
}

var _ formskema.Schema[any] = AnyAdapter{}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func anyAdapterFromSchema[T any](s formskema.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		shape:      s.Shape(),
		orig:       s,
	}
}

// Orig returns the schema this adapter was created from.
func (ad AnyAdapter) Orig() any { return ad.orig }

func (ad AnyAdapter) adapter() AnyAdapter { return ad }

func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

func (ad AnyAdapter) Shape() formskema.Shape {
	if ad.shape == 0 {
		return formskema.ShapePrimitive
	}
	return ad.shape
}

func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Nullable accepts null in place of a value; the output is then nil. Any other
// input goes through n.
func Nullable(n Node) AnyAdapter {
	inner := n.adapter()
	out := inner
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return inner.Parse(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := inner.JSONSchema()
		if err != nil {
			return nil, err
		}
		return &js.Schema{OneOf: []*js.Schema{s, {Type: "null"}}}, nil
	}
	return out
}
