package formskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
	// Refinements (custom predicates over a value or a collection)
	CodeCustom     = "custom"
	CodeUniqueness = "uniqueness"
	// Collection cardinality
	CodeTooFew  = "too_few"
	CodeTooMany = "too_many"
)

// Kind classifies an issue code into one of the failure families a caller
// usually branches on.
type Kind uint8

const (
	KindRequiredMissing Kind = iota + 1
	KindTypeMismatch
	KindConstraintViolation
	KindRefinementFailed
	KindCollectionCardinality
)

func (k Kind) String() string {
	switch k {
	case KindRequiredMissing:
		return "RequiredMissing"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindConstraintViolation:
		return "ConstraintViolation"
	case KindRefinementFailed:
		return "RefinementFailed"
	case KindCollectionCardinality:
		return "CollectionCardinality"
	default:
		return "Unknown"
	}
}

// KindOf maps an issue code to its Kind. Unrecognized codes are treated as
// refinements since they can only come from user-defined rules.
func KindOf(code string) Kind {
	switch code {
	case CodeRequired:
		return KindRequiredMissing
	case CodeInvalidType, CodeParseError, CodeDuplicateKey, CodeTruncated:
		return KindTypeMismatch
	case CodeTooSmall, CodeTooBig, CodeTooShort, CodeTooLong, CodePattern,
		CodeInvalidEnum, CodeInvalidFormat, CodeUnknownKey:
		return KindConstraintViolation
	case CodeTooFew, CodeTooMany:
		return KindCollectionCardinality
	default:
		return KindRefinementFailed
	}
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted path (for example: techs.1.title). Empty for the root.
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":2, "got":0}).
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule  string
	Cause error
}

// Kind reports the failure family of the issue.
func (it Issue) Kind() Kind { return KindOf(it.Code) }

// Pointer renders the issue path as a JSON Pointer (RFC 6901).
func (it Issue) Pointer() string { return ParsePath(it.Path).Pointer() }

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(b, "%s at %s", it.Code, path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Tree groups the issues by path, keeping first-seen path order.
func (iss Issues) Tree() ErrorTree {
	var t ErrorTree
	for _, it := range iss {
		t.Add(it)
	}
	return t
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues converts any error into Issues. Errors that do not already carry
// Issues become a single parse_error at the root.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// Rebase prefixes every issue path with base. Used when a child node's issues
// are lifted into its parent.
func Rebase(base string, iss Issues) Issues {
	if base == "" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = JoinPath(base, it.Path)
		out = append(out, it)
	}
	return out
}
