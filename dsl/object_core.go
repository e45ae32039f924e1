package dsl

import (
	"context"
	"sort"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
)

// ObjectSchema validates a map[string]any field by field, in declaration
// order, and collects every field failure.
type ObjectSchema struct {
	fields        []objectField
	known         map[string]int
	unknownPolicy formskema.UnknownPolicy
	refines       []objRefine
}

var _ formskema.Schema[map[string]any] = (*ObjectSchema)(nil)

// Fields returns the declared field names in declaration order.
func (o *ObjectSchema) Fields() []string {
	out := make([]string, len(o.fields))
	for i, f := range o.fields {
		out[i] = f.name
	}
	return out
}

// Unknown reports the unknown-key policy.
func (o *ObjectSchema) Unknown() formskema.UnknownPolicy { return o.unknownPolicy }

func (o *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	if v == nil {
		return nil, formskema.Issues{{Code: formskema.CodeRequired, Message: messages.T(formskema.CodeRequired, nil)}}
	}
	src, ok := v.(map[string]any)
	if !ok {
		params := map[string]any{"expected": "object"}
		return nil, formskema.Issues{{Code: formskema.CodeInvalidType, Message: messages.T(formskema.CodeInvalidType, params), Params: params}}
	}
	out, iss := o.collectKnown(ctx, src)
	if formskema.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	iss = formskema.AppendIssues(iss, o.collectUnknown(src, out)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if iss := o.runRefines(ctx, out); len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// collectKnown parses declared fields and rebases their issues under the
// field name.
func (o *ObjectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, formskema.Issues) {
	out := make(map[string]any, len(o.fields))
	var iss formskema.Issues
	for _, f := range o.fields {
		val, exists := src[f.name]
		if !exists || val == nil {
			switch {
			case f.hasDef:
				val = f.def
			case f.optional:
				continue
			}
		}
		parsed, err := f.ad.Parse(ctx, val)
		if err != nil {
			iss = formskema.AppendIssues(iss, formskema.Rebase(f.name, formskema.ToIssues(err))...)
			if formskema.IsFailFast(ctx) {
				return out, iss
			}
			continue
		}
		out[f.name] = parsed
	}
	return out, iss
}

// collectUnknown applies the unknown-key policy in key-sorted order and may
// write into out for passthrough.
func (o *ObjectSchema) collectUnknown(src map[string]any, out map[string]any) formskema.Issues {
	if o.unknownPolicy == formskema.UnknownStrip {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.known[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss formskema.Issues
	for _, k := range uks {
		switch o.unknownPolicy {
		case formskema.UnknownStrict:
			iss = formskema.AppendIssues(iss, formskema.Issue{Path: k, Code: formskema.CodeUnknownKey, Message: messages.T(formskema.CodeUnknownKey, nil)})
		case formskema.UnknownPassthrough:
			out[k] = src[k]
		}
	}
	return iss
}

// runRefines evaluates object-level predicates over the output. They only run
// once every field passed.
func (o *ObjectSchema) runRefines(ctx context.Context, out map[string]any) formskema.Issues {
	var iss formskema.Issues
	for _, r := range o.refines {
		if r.fn(out) {
			continue
		}
		iss = formskema.AppendIssues(iss, formskema.Issue{
			Path:    r.path,
			Code:    formskema.CodeCustom,
			Message: orDefault(r.msg, formskema.CodeCustom, nil),
			Rule:    r.name,
		})
		if formskema.IsFailFast(ctx) {
			break
		}
	}
	return iss
}

func (o *ObjectSchema) Shape() formskema.Shape { return formskema.ShapeObject }

func (o *ObjectSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, f := range o.fields {
		fs, err := f.ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		if f.hasDef {
			fs.Default = f.def
		}
		s.Properties[f.name] = fs
		if !f.optional && !f.hasDef {
			s.Required = append(s.Required, f.name)
		}
	}
	if o.unknownPolicy == formskema.UnknownStrict {
		s.AdditionalProperties = false
	}
	return s, nil
}

func (o *ObjectSchema) adapter() AnyAdapter { return SchemaOf[map[string]any](o) }
