package formskema_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
)

func TestErrorTree(t *testing.T) {
	var tree formskema.ErrorTree
	assert.True(t, tree.Empty())
	assert.Equal(t, "", tree.First("name"))

	tree.Add(formskema.Issue{Path: "name", Code: formskema.CodeRequired, Message: "name is required"})
	tree.Add(formskema.Issue{Path: "techs", Code: formskema.CodeTooFew, Message: "insert at least 2 technologies"})
	tree.Add(formskema.Issue{Path: "name", Code: formskema.CodeCustom, Message: "second"})

	assert.False(t, tree.Empty())
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, []string{"name", "techs"}, tree.Paths())
	assert.True(t, tree.Has("techs"))
	assert.False(t, tree.Has("email"))
	assert.Equal(t, "name is required", tree.First("name"))
	assert.Equal(t, []string{"name is required", "second"}, tree.Messages("name"))
	assert.Len(t, tree.All(), 3)
	assert.Equal(t, formskema.CodeCustom, tree.All()[1].Code, "All groups by path in first-seen order")

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":["name is required","second"],"techs":["insert at least 2 technologies"]}`, string(b))
}

func TestResult(t *testing.T) {
	ok := formskema.Ok(42)
	assert.True(t, ok.IsOk())
	v, isOk := ok.Value()
	assert.True(t, isOk)
	assert.Equal(t, 42, v)
	assert.True(t, ok.Errors().Empty())
	got, err := ok.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	bad := formskema.Err[int](formskema.Issues{{Path: "x", Code: formskema.CodeRequired, Message: "x is required"}})
	assert.False(t, bad.IsOk())
	_, isOk = bad.Value()
	assert.False(t, isOk)
	assert.Equal(t, "x is required", bad.Errors().First("x"))
	_, err = bad.Unwrap()
	iss, isIss := formskema.AsIssues(err)
	require.True(t, isIss)
	assert.Len(t, iss, 1)

	empty := formskema.Err[int](nil)
	assert.False(t, empty.IsOk())
	assert.False(t, empty.Errors().Empty(), "an Err result always carries an entry")
}
