package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
)

type line struct {
	SKU string  `json:"sku"`
	Qty float64 `json:"qty"`
}

type order struct {
	ID    string `formskema:"name=id" json:"orderId"`
	Count int    `json:"count"`
	Note  *string
	Lines []line `json:"lines"`
	Skip  string `json:"-"`
	Paid  bool   `json:"paid,omitempty"`
}

func orderSchema() *dsl.ObjectSchema {
	return dsl.Object().
		Field("id", dsl.String()).
		Field("count", dsl.Number()).
		Field("Note", dsl.String()).Optional().
		Field("lines", dsl.Array(dsl.Object().
			Field("sku", dsl.String()).
			Field("qty", dsl.Number()).
			MustBuild())).
		Field("paid", dsl.Bool()).Default(false).
		MustBuild()
}

func TestBind(t *testing.T) {
	s, err := dsl.Bind[order](orderSchema())
	require.NoError(t, err)

	o, err := s.Parse(context.Background(), map[string]any{
		"id": "o-1", "count": 3, "Note": "fragile", "Skip": "x",
		"lines": []any{map[string]any{"sku": "a", "qty": 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, o.Note)
	assert.Equal(t, "fragile", *o.Note)
	o.Note = nil
	assert.Equal(t, order{ID: "o-1", Count: 3, Lines: []line{{SKU: "a", Qty: 2}}}, o)
}

func TestBind_PassesIssuesThrough(t *testing.T) {
	s := dsl.MustBind[order](orderSchema())
	_, err := s.Parse(context.Background(), map[string]any{"id": "o-1", "count": 3, "lines": []any{map[string]any{"sku": 1}}})
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"lines.0.sku", "lines.0.qty"}, iss.Tree().Paths())
	assert.Equal(t, formskema.ShapeObject, s.Shape())
}

func TestBind_RejectsNonStruct(t *testing.T) {
	_, err := dsl.Bind[map[string]any](orderSchema())
	assert.Error(t, err)
	assert.Panics(t, func() { dsl.MustBind[int](orderSchema()) })
}

func TestBind_TypeMismatch(t *testing.T) {
	type wrong struct {
		ID int `json:"id"`
	}
	s := dsl.MustBind[wrong](dsl.Object().Field("id", dsl.String()).MustBuild())
	_, err := s.Parse(context.Background(), map[string]any{"id": "x"})
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "id", iss[0].Path)
	assert.Equal(t, formskema.CodeInvalidType, iss[0].Code)
}

func TestBind_NumericNarrowing(t *testing.T) {
	type counts struct {
		Count int  `json:"count"`
		Small int8 `json:"small"`
		Size  uint `json:"size"`
	}
	s := dsl.MustBind[counts](dsl.Object().
		Field("count", dsl.Number()).
		Field("small", dsl.Number()).Optional().
		Field("size", dsl.Number()).Optional().
		MustBuild())
	ctx := context.Background()

	c, err := s.Parse(ctx, map[string]any{"count": 3.0, "small": 100, "size": 7})
	require.NoError(t, err)
	assert.Equal(t, counts{Count: 3, Small: 100, Size: 7}, c)

	for name, in := range map[string]map[string]any{
		"count": {"count": 3.7},
		"small": {"count": 1, "small": 300},
		"size":  {"count": 1, "size": -2},
	} {
		_, err := s.Parse(ctx, in)
		iss, ok := formskema.AsIssues(err)
		require.True(t, ok, name)
		assert.Equal(t, name, iss[0].Path)
		assert.Equal(t, formskema.CodeInvalidType, iss[0].Code)
	}
}
