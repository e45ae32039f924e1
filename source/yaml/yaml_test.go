package yaml_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/formskema/internal/engine"
	yamlsrc "github.com/reoring/formskema/source/yaml"
)

func TestDecode(t *testing.T) {
	doc := `
name: ana
active: true
score: 7
ratio: 0.5
nothing: ~
quoted: "7"
techs:
  - title: go
    knowledge: 8
`
	v, err := eng.DecodeAny(yamlsrc.NewBytes([]byte(doc)), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":    "ana",
		"active":  true,
		"score":   json.Number("7"),
		"ratio":   json.Number("0.5"),
		"nothing": nil,
		"quoted":  "7",
		"techs": []any{
			map[string]any{"title": "go", "knowledge": json.Number("8")},
		},
	}, v)
}

func TestAnchorsAndAliases(t *testing.T) {
	doc := "base: &b {title: go}\ncopy: *b\n"
	v, err := eng.DecodeAny(yamlsrc.NewBytes([]byte(doc)), nil)
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, m["base"], m["copy"])
}

func TestDuplicateKeysReachEnforcement(t *testing.T) {
	doc := []byte("a: 1\na: 2\n")
	v, err := eng.DecodeAny(yamlsrc.NewBytes(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), v.(map[string]any)["a"])

	_, err = eng.DecodeAny(eng.WrapWithEnforcement(yamlsrc.NewBytes(doc), eng.EnforceOptions{OnDuplicate: eng.DupError}), nil)
	var ie eng.IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "a", ie.Path)
}

func TestErrors(t *testing.T) {
	_, err := eng.DecodeAny(yamlsrc.NewBytes([]byte("? [a, b]\n: c\n")), nil)
	assert.Error(t, err, "non-scalar keys are rejected")

	_, err = eng.DecodeAny(yamlsrc.NewBytes([]byte("a: [1, 2")), nil)
	assert.Error(t, err)

	_, err = eng.DecodeAny(yamlsrc.NewBytes(nil), nil)
	assert.Error(t, err)
}

func TestLocationUnknown(t *testing.T) {
	assert.Equal(t, int64(-1), yamlsrc.NewBytes([]byte("a: 1")).Location())
}

// nestedAliases builds a document where each level lists ten aliases of the
// previous one, so full expansion yields 10^depth scalars.
func nestedAliases(depth int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= depth; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		refs := strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestAliasExpansionIsBounded(t *testing.T) {
	_, err := eng.DecodeAny(yamlsrc.NewBytes([]byte(nestedAliases(7))), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aliases expand")

	v, err := eng.DecodeAny(yamlsrc.NewBytes([]byte(nestedAliases(2))), nil)
	require.NoError(t, err, "small expansions stay allowed")
	assert.Len(t, v.(map[string]any)["l2"], 10)
}

func TestRecursiveAnchor(t *testing.T) {
	_, err := eng.DecodeAny(yamlsrc.NewBytes([]byte("a: &x [1, *x]\n")), nil)
	assert.Error(t, err)
}

func TestLimitBytes(t *testing.T) {
	src := yamlsrc.NewBytes([]byte("name: " + strings.Repeat("a", 100) + "\n"))
	src.(eng.ByteLimiter).LimitBytes(32)
	_, err := src.NextToken()
	var ie eng.IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "truncated", ie.Code)
	assert.Equal(t, "input larger than 32 bytes", ie.Message)

	src = yamlsrc.NewBytes([]byte("a: 1\n"))
	src.(eng.ByteLimiter).LimitBytes(32)
	_, err = eng.DecodeAny(src, nil)
	assert.NoError(t, err)
}
