package formskema_test

import (
	"context"
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/rules"
)

func profileSchema() *dsl.ObjectSchema {
	return dsl.Object().
		Field("name", dsl.String().Rule(rules.NonEmpty("name is required"))).
		Field("age", dsl.Number().Rule(rules.Min(18, "must be an adult"))).
		Field("tags", dsl.Array(dsl.String())).Optional().
		MustBuild()
}

func TestValidateFrom_JSON(t *testing.T) {
	ctx := context.Background()
	res := formskema.ValidateFrom(ctx, profileSchema(), formskema.JSONBytes([]byte(`{"name":"ana","age":30,"tags":["a"]}`)))
	require.True(t, res.IsOk(), res.Errors().Map())
	v, _ := res.Value()
	assert.Equal(t, map[string]any{"name": "ana", "age": 30.0, "tags": []string{"a"}}, v)
}

func TestValidateFrom_YAML(t *testing.T) {
	ctx := context.Background()
	doc := "name: ana\nage: 30\ntags:\n  - a\n  - b\n"
	res := formskema.ValidateFrom(ctx, profileSchema(), formskema.YAMLBytes([]byte(doc)))
	require.True(t, res.IsOk(), res.Errors().Map())
	v, _ := res.Value()
	assert.Equal(t, []string{"a", "b"}, v["tags"])
	assert.Equal(t, 30.0, v["age"])
}

func TestValidateFrom_CollectsAllFields(t *testing.T) {
	res := formskema.ValidateFrom(context.Background(), profileSchema(), formskema.JSONBytes([]byte(`{"name":"","age":3}`)))
	require.False(t, res.IsOk())
	assert.Equal(t, []string{"name", "age"}, res.Errors().Paths())
	assert.Equal(t, "must be an adult", res.Errors().First("age"))
}

func TestValidateFrom_FailFast(t *testing.T) {
	res := formskema.ValidateFrom(context.Background(), profileSchema(),
		formskema.JSONBytes([]byte(`{"name":"","age":3}`)), formskema.ParseOpt{FailFast: true})
	require.False(t, res.IsOk())
	assert.Equal(t, []string{"name"}, res.Errors().Paths())
}

func TestParseFrom_DuplicateKeys(t *testing.T) {
	ctx := context.Background()
	input := []byte(`{"name":"a","name":"b","age":20}`)

	_, err := formskema.ParseFrom(ctx, profileSchema(), formskema.JSONBytes(input), formskema.ParseOpt{OnDuplicateKey: formskema.Error})
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, formskema.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "name", iss[0].Path)

	var warned []formskema.Issue
	v, err := formskema.ParseFrom(ctx, profileSchema(), formskema.JSONBytes(input), formskema.ParseOpt{
		OnDuplicateKey: formskema.Warn,
		OnWarn:         func(it formskema.Issue) { warned = append(warned, it) },
	})
	require.NoError(t, err)
	assert.Equal(t, "b", v["name"], "last value wins")
	require.Len(t, warned, 1)
	assert.Equal(t, formskema.CodeDuplicateKey, warned[0].Code)

	v, err = formskema.ParseFrom(ctx, profileSchema(), formskema.JSONBytes(input))
	require.NoError(t, err)
	assert.Equal(t, "b", v["name"])
}

func TestParseFrom_Limits(t *testing.T) {
	ctx := context.Background()
	s := dsl.SchemaOf[any](dsl.Nullable(dsl.String()))

	t.Run("depth", func(t *testing.T) {
		_, err := formskema.Decode(formskema.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), formskema.ParseOpt{MaxDepth: 2})
		iss, ok := formskema.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, formskema.CodeParseError, iss[0].Code)
		assert.Equal(t, "a.b", iss[0].Path)
	})
	t.Run("bytes", func(t *testing.T) {
		_, err := formskema.Decode(formskema.JSONBytes([]byte(`{"name":"`+strings.Repeat("x", 64)+`"}`)), formskema.ParseOpt{MaxBytes: 16})
		iss, ok := formskema.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, formskema.CodeTruncated, iss[0].Code)
	})
	t.Run("malformed", func(t *testing.T) {
		res := formskema.ValidateFrom(ctx, s, formskema.JSONBytes([]byte(`{"a":`)))
		require.False(t, res.IsOk())
		assert.Equal(t, formskema.CodeParseError, res.Errors().Issues("")[0].Code)
	})
	t.Run("missing separators", func(t *testing.T) {
		for _, doc := range []string{`{"a" 1}`, `{"a":1 "b":2}`, `["x" "y"]`, `{"a":1,}`, `[1,,2]`} {
			_, err := formskema.Decode(formskema.JSONBytes([]byte(doc)))
			iss, ok := formskema.AsIssues(err)
			require.True(t, ok, doc)
			assert.Equal(t, formskema.CodeParseError, iss[0].Code, doc)
		}
	})
	t.Run("yaml bytes", func(t *testing.T) {
		doc := []byte("name: " + strings.Repeat("x", 64) + "\n")
		_, err := formskema.Decode(formskema.YAMLBytes(doc), formskema.ParseOpt{MaxBytes: 16})
		iss, ok := formskema.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, formskema.CodeTruncated, iss[0].Code)
		assert.Equal(t, "input larger than 16 bytes", iss[0].Message)
	})
	t.Run("trailing data", func(t *testing.T) {
		_, err := formskema.Decode(formskema.JSONBytes([]byte(`{"a":1} {"b":2}`)))
		iss, ok := formskema.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, formskema.CodeParseError, iss[0].Code)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := formskema.Decode(formskema.JSONBytes(nil))
		assert.Error(t, err)
	})
}

func TestDecode_NumberMode(t *testing.T) {
	v, err := formskema.Decode(formskema.JSONBytes([]byte(`{"n":1.5}`)))
	require.NoError(t, err)
	assert.Equal(t, stdjson.Number("1.5"), v.(map[string]any)["n"])

	v, err = formskema.Decode(formskema.WithNumberMode(formskema.JSONBytes([]byte(`{"n":1.5}`)), formskema.NumberFloat64))
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.(map[string]any)["n"])
}

func TestValidate_NilSchema(t *testing.T) {
	res := formskema.Validate[int](context.Background(), nil, 1)
	assert.False(t, res.IsOk())
}

func TestSafeParseAndIs(t *testing.T) {
	ctx := context.Background()
	s := dsl.String().Rule(rules.MinLength(2, ""))
	v, ok := formskema.SafeParse[string](ctx, s, "ab")
	assert.True(t, ok)
	assert.Equal(t, "ab", v)
	assert.False(t, formskema.Is[string](ctx, s, "a"))
	assert.False(t, formskema.Is[string](ctx, s, 1))
}

func TestFailFastContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, formskema.IsFailFast(ctx))
	assert.True(t, formskema.IsFailFast(formskema.WithFailFast(ctx, true)))
}
