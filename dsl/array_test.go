package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/rules"
)

func itemsSchema() *dsl.ArraySchema[map[string]any] {
	item := dsl.Object().
		Field("title", dsl.String().Rule(rules.NonEmpty("title is required"))).
		Field("qty", dsl.Number().Coerce().Rule(rules.Min(1, "qty must be positive"))).
		MustBuild()
	return dsl.Array(item).
		Min(2, "add at least 2 items").
		Refine(func(xs []map[string]any) bool {
			for _, x := range xs {
				if x["qty"].(float64) > 5 {
					return true
				}
			}
			return false
		}, "one item needs qty above 5")
}

func TestArray_Valid(t *testing.T) {
	out, err := itemsSchema().Parse(context.Background(), []any{
		map[string]any{"title": "a", "qty": "6"},
		map[string]any{"title": "b", "qty": 1},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 6.0, out[0]["qty"])
}

func TestArray_ElementErrorsRebased(t *testing.T) {
	_, err := itemsSchema().Parse(context.Background(), []any{
		map[string]any{"title": "a", "qty": 9},
		map[string]any{"title": "", "qty": 0},
		map[string]any{"title": "c", "qty": "x"},
	})
	iss := issuesOf(t, err)
	assert.Equal(t, []string{"1.title", "1.qty", "2.qty"}, iss.Tree().Paths())
	assert.Equal(t, formskema.KindTypeMismatch, iss[2].Kind())
}

func TestArray_WholeArrayRules(t *testing.T) {
	_, err := itemsSchema().Parse(context.Background(), []any{})
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "", iss[0].Path)
	assert.Equal(t, formskema.KindCollectionCardinality, iss[0].Kind())
	assert.Equal(t, "add at least 2 items", iss[0].Message)

	_, err = itemsSchema().Parse(context.Background(), []any{
		map[string]any{"title": "a", "qty": 2},
		map[string]any{"title": "b", "qty": 5},
	})
	iss = issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, formskema.KindRefinementFailed, iss[0].Kind())
	assert.Equal(t, "one item needs qty above 5", iss[0].Message)
}

func TestArray_WholeArrayRulesSkippedOnElementFailure(t *testing.T) {
	_, err := itemsSchema().Parse(context.Background(), []any{map[string]any{"title": ""}})
	iss := issuesOf(t, err)
	for _, it := range iss {
		assert.NotEqual(t, "", it.Path)
	}
}

func TestArray_FailFast(t *testing.T) {
	ctx := formskema.WithFailFast(context.Background(), true)
	_, err := dsl.Array(dsl.Number()).Parse(ctx, []any{"a", "b"})
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "0", iss[0].Path)
}

func TestArray_Inputs(t *testing.T) {
	ctx := context.Background()
	out, err := dsl.Array(dsl.String()).Parse(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	_, err = dsl.Array(dsl.String()).Parse(ctx, "a")
	iss := issuesOf(t, err)
	assert.Equal(t, formskema.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "expected array", iss[0].Message)

	_, err = dsl.Array(dsl.String()).Parse(ctx, nil)
	assert.Equal(t, formskema.CodeRequired, issuesOf(t, err)[0].Code)

	_, err = dsl.ArrayOf(dsl.String(), rules.MaxItems[string](1, "")).Parse(ctx, []any{"a", "b"})
	assert.Equal(t, formskema.CodeTooMany, issuesOf(t, err)[0].Code)
	assert.Equal(t, formskema.ShapeArray, dsl.Array(dsl.String()).Shape())
}

func TestArray_UniqueBy(t *testing.T) {
	s := dsl.Array(dsl.String().Rule(rules.Lowercase())).
		Rule(rules.UniqueBy(func(s string) string { return s }, "tags must be unique"))
	_, err := s.Parse(context.Background(), []any{"Go", "go"})
	iss := issuesOf(t, err)
	assert.Equal(t, formskema.CodeUniqueness, iss[0].Code)
}
