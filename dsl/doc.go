// Package dsl provides the schema builders for formskema.
//
// Overview
//   - Primitives: String()/Number()/Bool()/File()/FileList(), each with an
//     ordered rule chain (.Rule(...)) and optional coercion (.Coerce()).
//   - Object(): declare fields in order with Field(name, node); fields are
//     required unless .Optional(); unknown keys are stripped unless
//     UnknownStrict()/UnknownPassthrough() is chosen. Refine/RefineAt add
//     predicates that read several fields at once.
//   - Array(elem): validate each element, then whole-array rules
//     (.Min/.Max/.Refine/.Rule) over the element outputs.
//   - Pipe(from, fn): convert the output of one schema into another type and
//     continue with rules on the new type.
//   - Bind[T](obj): project an object's output map into struct T.
//
// Error paths are dotted: a failure in the title of the second tech is
// reported at "techs.1.title"; whole-array failures at "techs".
//
// Example
//
//	tech := dsl.Object().
//	    Field("title", dsl.String().Rule(rules.NonEmpty("title is required"))).
//	    Field("knowledge", dsl.Number().Coerce().Rule(rules.Min(0, ""), rules.Max(100, ""))).
//	    MustBuild()
//
//	form := dsl.Object().
//	    Field("email", dsl.String().Rule(rules.Email(""), rules.Lowercase())).
//	    Field("techs", dsl.Array(tech).Min(2, "insert at least 2 technologies")).
//	    MustBuild()
//
//	res := formskema.Validate(ctx, form, input)
//	if !res.IsOk() {
//	    fmt.Println(res.Errors().First("techs"))
//	}
package dsl
