package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// emailRe accepts the common local@domain.tld shape; it is not RFC 5322.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+'-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)

// NonEmpty fails when the string is empty or only whitespace.
func NonEmpty(msg string) Rule[string] {
	return New("nonEmpty", formskema.CodeRequired, msg, func(s string) bool {
		return strings.TrimSpace(s) != ""
	}).Annotated(func(s *js.Schema) {
		if s.MinLength == nil || *s.MinLength < 1 {
			s.MinLength = js.Int(1)
		}
	})
}

// MinLength fails when the string has fewer than n runes.
func MinLength(n int, msg string) Rule[string] {
	return New("minLength", formskema.CodeTooShort, msg, func(s string) bool {
		return utf8.RuneCountInString(s) >= n
	}).With("min", n).Annotated(func(s *js.Schema) { s.MinLength = js.Int(n) })
}

// MaxLength fails when the string has more than n runes.
func MaxLength(n int, msg string) Rule[string] {
	return New("maxLength", formskema.CodeTooLong, msg, func(s string) bool {
		return utf8.RuneCountInString(s) <= n
	}).With("max", n).Annotated(func(s *js.Schema) { s.MaxLength = js.Int(n) })
}

// Email fails unless the string looks like an e-mail address.
func Email(msg string) Rule[string] {
	return New("email", formskema.CodeInvalidFormat, msg, emailRe.MatchString).
		With("format", "email").
		Annotated(func(s *js.Schema) { s.Format = "email" })
}

// Pattern fails unless re matches the string.
func Pattern(re *regexp.Regexp, msg string) Rule[string] {
	return New("pattern", formskema.CodePattern, msg, re.MatchString).
		With("pattern", re.String()).
		Annotated(func(s *js.Schema) { s.Pattern = re.String() })
}

// EndsWith fails unless the string ends with suffix.
func EndsWith(suffix, msg string) Rule[string] {
	return New("endsWith", formskema.CodeCustom, msg, func(s string) bool {
		return strings.HasSuffix(s, suffix)
	}).With("suffix", suffix)
}

// OneOf fails unless the string equals one of values.
func OneOf(values []string, msg string) Rule[string] {
	allowed := make(map[string]struct{}, len(values))
	enum := make([]any, len(values))
	for i, v := range values {
		allowed[v] = struct{}{}
		enum[i] = v
	}
	return New("oneOf", formskema.CodeInvalidEnum, msg, func(s string) bool {
		_, ok := allowed[s]
		return ok
	}).With("values", append([]string(nil), values...)).
		Annotated(func(s *js.Schema) { s.Enum = enum })
}

// Lowercase lowercases the string.
func Lowercase() Rule[string] { return Transform("lowercase", strings.ToLower) }

// Trim removes leading and trailing whitespace.
func Trim() Rule[string] { return Transform("trim", strings.TrimSpace) }

// Capitalize upper-cases the first letter of each word and leaves the rest of
// the word alone, so applying it twice is a no-op.
func Capitalize() Rule[string] {
	return Transform("capitalize", func(s string) string {
		// Casers keep state; one per call.
		return cases.Title(language.Und, cases.NoLower).String(s)
	})
}
