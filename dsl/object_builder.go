package dsl

import (
	"errors"
	"fmt"
	"maps"

	formskema "github.com/reoring/formskema"
)

type objectField struct {
	name     string
	ad       AnyAdapter
	optional bool
	hasDef   bool
	def      any
}

type objRefine struct {
	name string
	path string
	msg  string
	fn   func(map[string]any) bool
}

type objectBuilder struct {
	fields        []objectField
	index         map[string]int
	errs          []error
	unknownPolicy formskema.UnknownPolicy
	refines       []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Fields are required unless marked
// Optional; unknown keys are stripped unless another policy is chosen.
func Object() *objectBuilder {
	return &objectBuilder{index: map[string]int{}, unknownPolicy: formskema.UnknownStrip}
}

// Field registers a field. Registering the same name twice makes Build fail.
func (b *objectBuilder) Field(name string, n Node) *fieldStep {
	switch {
	case name == "":
		b.errs = append(b.errs, errors.New("dsl: empty field name"))
	case n == nil:
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q has no schema", name))
	default:
		if _, dup := b.index[name]; dup {
			b.errs = append(b.errs, fmt.Errorf("dsl: duplicate field %q", name))
			break
		}
		b.index[name] = len(b.fields)
		b.fields = append(b.fields, objectField{name: name, ad: n.adapter()})
	}
	return &fieldStep{b: b, name: name}
}

func (f *fieldStep) field() *objectField {
	if i, ok := f.b.index[f.name]; ok {
		return &f.b.fields[i]
	}
	return nil
}

// Optional lets the field be missing or null; it is then absent from the
// output.
func (f *fieldStep) Optional() *objectBuilder {
	if fd := f.field(); fd != nil {
		fd.optional = true
	}
	return f.b
}

// Required marks the field as required (the default) and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	if fd := f.field(); fd != nil {
		fd.optional = false
	}
	return f.b
}

// Default is parsed through the field schema when the key is missing or null.
func (f *fieldStep) Default(v any) *objectBuilder {
	if fd := f.field(); fd != nil {
		fd.hasDef = true
		fd.def = v
	}
	return f.b
}

func (f *fieldStep) Field(name string, n Node) *fieldStep { return f.b.Field(name, n) }
func (f *fieldStep) UnknownStrict() *objectBuilder        { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder         { return f.b.UnknownStrip() }
func (f *fieldStep) UnknownPassthrough() *objectBuilder   { return f.b.UnknownPassthrough() }
func (f *fieldStep) Refine(msg string, fn func(map[string]any) bool) *objectBuilder {
	return f.b.Refine(msg, fn)
}
func (f *fieldStep) RefineAt(path, msg string, fn func(map[string]any) bool) *objectBuilder {
	return f.b.RefineAt(path, msg, fn)
}
func (f *fieldStep) Build() (*ObjectSchema, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *ObjectSchema      { return f.b.MustBuild() }

// UnknownStrict reports unknown keys as unknown_key.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = formskema.UnknownStrict
	return b
}

// UnknownStrip drops unknown keys from the output.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = formskema.UnknownStrip
	return b
}

// UnknownPassthrough copies unknown keys to the output unvalidated.
func (b *objectBuilder) UnknownPassthrough() *objectBuilder {
	b.unknownPolicy = formskema.UnknownPassthrough
	return b
}

// Refine adds a predicate over the whole output object, reported at the
// object's own path.
func (b *objectBuilder) Refine(msg string, fn func(map[string]any) bool) *objectBuilder {
	return b.RefineAt("", msg, fn)
}

// RefineAt adds a predicate over the whole output object whose failure is
// reported at path (dotted, relative to the object). Use it for rules that
// read sibling fields, such as a password confirmation.
func (b *objectBuilder) RefineAt(path, msg string, fn func(map[string]any) bool) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: "refine", path: path, msg: msg, fn: fn})
	return b
}

// Build validates the builder and returns an immutable schema.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return &ObjectSchema{
		fields:        append([]objectField(nil), b.fields...),
		known:         maps.Clone(b.index),
		unknownPolicy: b.unknownPolicy,
		refines:       append([]objRefine(nil), b.refines...),
	}, nil
}

// MustBuild is like Build but panics on error. Use it for package-level or
// start-up schemas.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
