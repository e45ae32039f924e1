package engine

import (
	"fmt"
	"io"
	"strconv"
)

// DuplicateStrictness controls what happens when an object repeats a key.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is the engine's view of a decode problem. Code uses the same
// vocabulary as the root package; Path is dotted (a.0.b), empty for the root.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a fatal SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// TooLarge is the issue reported when the input exceeds max bytes.
func TooLarge(path string, max int64) IssueError {
	return IssueError{SimpleIssue{Code: "truncated", Path: path, Message: fmt.Sprintf("input larger than %d bytes", max)}}
}

// ByteLimiter is implemented by sources that buffer the whole input before
// producing tokens. LimitBytes must be called before the first NextToken; the
// source then reads at most n bytes and fails with TooLarge beyond that.
type ByteLimiter interface {
	LimitBytes(n int64)
}

// ReadLimited reads all of r. With max > 0 it stops after max+1 bytes and
// fails with TooLarge when the input is longer than max.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, TooLarge("", max)
	}
	return b, nil
}

// EnforceOptions selects the limits applied while tokens are read.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int   // 0 = unlimited
	MaxBytes    int64 // 0 = unlimited; needs a source that reports Location
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

func (o EnforceOptions) disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth == 0 && o.MaxBytes == 0
}

// WrapWithEnforcement returns a TokenSource that applies opt while inner is
// read. With every limit off, inner is returned as is.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.disabled() {
		return inner
	}
	return &limited{inner: inner, opt: opt}
}

type limited struct {
	inner TokenSource
	opt   EnforceOptions
	paths pathTracker
}

func (l *limited) Location() int64 { return l.inner.Location() }

func (l *limited) NextToken() (Token, error) {
	tok, err := l.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := l.paths.step(tok)
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if err := l.checkDepth(path); err != nil {
			return Token{}, err
		}
	case KindKey:
		if err := l.checkKey(path, tok.String); err != nil {
			return Token{}, err
		}
	}
	if err := l.checkBytes(path); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (l *limited) checkDepth(path string) error {
	if l.opt.MaxDepth > 0 && l.paths.depth() > l.opt.MaxDepth {
		return IssueError{SimpleIssue{
			Code:    "parse_error",
			Path:    path,
			Message: fmt.Sprintf("nesting deeper than %d levels", l.opt.MaxDepth),
		}}
	}
	return nil
}

func (l *limited) checkKey(path, key string) error {
	if l.opt.OnDuplicate == DupIgnore || !l.paths.repeated {
		return nil
	}
	si := SimpleIssue{Code: "duplicate_key", Path: path, Message: fmt.Sprintf("key %q duplicated", key)}
	if l.opt.OnDuplicate == DupError {
		return IssueError{si}
	}
	if l.opt.IssueSink != nil {
		l.opt.IssueSink(si)
	}
	return nil
}

func (l *limited) checkBytes(path string) error {
	if l.opt.MaxBytes <= 0 {
		return nil
	}
	if off := l.inner.Location(); off > l.opt.MaxBytes {
		return TooLarge(path, l.opt.MaxBytes)
	}
	return nil
}

// pathTracker follows the container stack and yields the dotted path of each
// token. After a key token, repeated reports whether the key was already seen
// in the same object.
type pathTracker struct {
	stack    []container
	repeated bool
}

type container struct {
	object  bool
	path    string
	seen    map[string]struct{}
	key     string // key awaiting its value
	hasKey  bool
	nextIdx int
}

func (p *pathTracker) depth() int { return len(p.stack) }

func (p *pathTracker) step(tok Token) string {
	p.repeated = false
	switch tok.Kind {
	case KindEndObject, KindEndArray:
		var path string
		if n := len(p.stack); n > 0 {
			path = p.stack[n-1].path
			p.stack = p.stack[:n-1]
		}
		p.valueDone()
		return path
	case KindKey:
		top := p.top()
		if top == nil || !top.object {
			return ""
		}
		_, p.repeated = top.seen[tok.String]
		top.seen[tok.String] = struct{}{}
		top.key, top.hasKey = tok.String, true
		return join(top.path, tok.String)
	}

	path := p.valuePath()
	switch tok.Kind {
	case KindBeginObject:
		p.stack = append(p.stack, container{object: true, path: path, seen: map[string]struct{}{}})
	case KindBeginArray:
		p.stack = append(p.stack, container{path: path})
	default:
		p.valueDone()
	}
	return path
}

// valuePath is the path of a value token about to be read.
func (p *pathTracker) valuePath() string {
	top := p.top()
	switch {
	case top == nil:
		return ""
	case top.object:
		if top.hasKey {
			return join(top.path, top.key)
		}
		return top.path
	default:
		path := join(top.path, strconv.Itoa(top.nextIdx))
		top.nextIdx++
		return path
	}
}

// valueDone marks the pending key of the enclosing object as consumed.
func (p *pathTracker) valueDone() {
	if top := p.top(); top != nil && top.object {
		top.key, top.hasKey = "", false
	}
}

func (p *pathTracker) top() *container {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func join(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}
