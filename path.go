package formskema

import (
	"strconv"
	"strings"
)

// Path is a field/index path into a value, e.g. techs.1.title. The zero value
// is the root.
type Path []string

// ParsePath splits a dotted path. "" and "." both denote the root.
func ParsePath(s string) Path {
	if s == "" || s == "." {
		return nil
	}
	parts := make(Path, 0, strings.Count(s, ".")+1)
	for _, p := range strings.Split(s, ".") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// Field returns a child path for an object member.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	return append(append(Path{}, p...), name)
}

// Index returns a child path for an array element.
func (p Path) Index(i int) Path {
	return append(append(Path{}, p...), strconv.Itoa(i))
}

// String renders the dotted form used as Error Tree key.
func (p Path) String() string { return strings.Join(p, ".") }

// Pointer renders the path as a JSON Pointer (RFC 6901).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1'
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Issue creates an Issue at this path. kv are alternating param keys/values.
func (p Path) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k, _ := kv[i].(string)
			m[k] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Code: code, Message: msg, Params: m}
}

// JoinPath joins two dotted paths, treating "" as the root.
func JoinPath(base, rel string) string {
	switch {
	case base == "":
		return rel
	case rel == "":
		return base
	default:
		return base + "." + rel
	}
}
