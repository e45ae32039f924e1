package dsl

import (
	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/rules"
)

// SchemaOf converts an arbitrary Schema[T] into an AnyAdapter so it can be
// used as an object field.
func SchemaOf[T any](s formskema.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }

// ArrayOf builds an array schema with whole-array rules in one call.
// Example: Field("tags", dsl.ArrayOf(dsl.String(), rules.MaxItems[string](5, "")))
func ArrayOf[E any](elem formskema.Schema[E], rs ...rules.Rule[[]E]) *ArraySchema[E] {
	return Array[E](elem).Rule(rs...)
}
