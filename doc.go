// Package formskema validates and transforms form-shaped data against a
// declarative schema.
//
// It provides:
//
// - Schema[T]: primitives, objects and arrays built with the dsl package
// - Rules (package rules) that check or transform one value, chained in order
// - Result[T]: Ok with the transformed value, or an ErrorTree keyed by dotted
// field path ("techs.1.title"; "" for the root)
// - A stable issue taxonomy: every Issue code maps to a Kind
// - JSON and YAML sources with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place builders under dsl/, rules under rules/, and the CLI under cmd/formskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildForm() // a *dsl.ObjectSchema
//	res := formskema.Validate(ctx, s, input)
//	if !res.IsOk() {
//	    msg := res.Errors().First("email")
//	}
//	res = formskema.ValidateFrom(ctx, s, formskema.JSONBytes(data), formskema.ParseOpt{MaxDepth: 32})
package formskema
