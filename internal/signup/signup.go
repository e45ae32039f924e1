// Package signup defines the reference sign-up form: an avatar upload, the
// user's name, e-mail and password, and a list of technologies with a
// self-assessed knowledge score.
package signup

import (
	"strings"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/rules"
)

// MaxAvatarBytes bounds the avatar upload (2 MiB).
const MaxAvatarBytes = 2 << 20

// EmailDomain is the only accepted e-mail domain.
const EmailDomain = "@gmail.com"

// Tech is one entry of the technologies list.
type Tech struct {
	Title     string  `json:"title"`
	Knowledge float64 `json:"knowledge"`
}

// Submission is the validated form.
type Submission struct {
	Avatar   formskema.File `json:"avatar"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Techs    []Tech         `json:"techs"`
}

// NewSchema builds the form schema. Build it once at start-up and pass it to
// whoever validates submissions.
func NewSchema() *dsl.ObjectSchema {
	avatar := dsl.Pipe(
		dsl.FileList().
			RequiredMessage("avatar is required").
			Rule(rules.MinItems[formskema.File](1, "avatar is required")),
		rules.First[formskema.File]("avatar is required"),
	).Rule(rules.MaxSize[formskema.File](MaxAvatarBytes, "avatar must be at most 2 MiB"))

	tech := dsl.Object().
		Field("title", dsl.String().
			RequiredMessage("title is required").
			Rule(rules.NonEmpty("title is required"))).
		Field("knowledge", dsl.Number().Coerce().
			RequiredMessage("knowledge is required").
			TypeMessage("knowledge must be a number").
			Rule(
				rules.Min(1, "knowledge must be between 1 and 100"),
				rules.Max(100, "knowledge must be between 1 and 100"),
			)).
		MustBuild()

	techs := dsl.Array[map[string]any](tech).
		Min(2, "insert at least 2 technologies").
		Rule(rules.Some(func(t map[string]any) bool {
			k, _ := t["knowledge"].(float64)
			return k > 5
		}, "at least one technology must have knowledge above 5"))

	return dsl.Object().
		Field("avatar", avatar).
		Field("name", dsl.String().
			RequiredMessage("name is required").
			Rule(rules.Trim(), rules.NonEmpty("name is required"), rules.Capitalize())).
		Field("email", dsl.String().
			RequiredMessage("email is required").
			Rule(
				rules.NonEmpty("email is required"),
				rules.Email("invalid email format"),
				rules.Lowercase(),
				rules.Refine(func(s string) bool { return strings.HasSuffix(s, EmailDomain) }, "only gmail addresses are accepted"),
			)).
		Field("password", dsl.String().
			RequiredMessage("password is required").
			Rule(
				rules.NonEmpty("password is required"),
				rules.MinLength(6, "password must be at least 6 characters"),
			)).
		Field("techs", techs).
		MustBuild()
}

// Typed projects the form output into a Submission.
func Typed(s *dsl.ObjectSchema) formskema.Schema[Submission] {
	return dsl.MustBind[Submission](s)
}
