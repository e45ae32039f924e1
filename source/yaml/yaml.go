// Package yaml provides a YAML token source backed by gopkg.in/yaml.v3, so
// form fixtures and inputs can be written in YAML and validated the same way
// as JSON.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/formskema/internal/engine"
)

// Aliases are expanded into tokens. The expansion is bounded by the size of
// the parsed document: at most expansionFactor tokens per node, plus
// expansionFloor.
const (
	expansionFactor = 16
	expansionFloor  = 4096
)

type source struct {
	r      io.Reader
	limit  int64
	loaded bool
	toks   []eng.Token
	pos    int
	err    error

	budget int
	active map[*yaml.Node]bool
}

var _ eng.ByteLimiter = (*source)(nil)

// NewReader reads the first YAML document from r into an engine.TokenSource.
// The reader is consumed on the first NextToken.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps a byte slice into an engine.TokenSource for YAML.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// LimitBytes bounds the input; longer input fails with a truncated issue.
func (s *source) LimitBytes(n int64) { s.limit = n }

func (s *source) load() {
	s.loaded = true
	data, err := eng.ReadLimited(s.r, s.limit)
	s.r = nil
	if err != nil {
		s.err = err
		return
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		s.err = err
		return
	}
	if len(doc.Content) == 0 {
		s.err = io.EOF
		return
	}
	root := doc.Content[0]
	s.budget = countNodes(root)*expansionFactor + expansionFloor
	s.active = map[*yaml.Node]bool{}
	if err := s.walk(root); err != nil {
		s.toks, s.err = nil, err
	}
}

func (s *source) NextToken() (eng.Token, error) {
	if !s.loaded {
		s.load()
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location is always -1: YAML has no stable byte offset once parsed into
// nodes. The byte limit is applied when the input is read.
func (s *source) Location() int64 { return -1 }

func (s *source) emit(t eng.Token) error {
	if len(s.toks) >= s.budget {
		return fmt.Errorf("yaml: aliases expand the document beyond %d values", s.budget)
	}
	t.Offset = -1
	s.toks = append(s.toks, t)
	return nil
}

func (s *source) walk(n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("yaml: line %d: unknown anchor %q", n.Line, n.Value)
		}
		if s.active[n.Alias] {
			return fmt.Errorf("yaml: line %d: anchor %q contains itself", n.Line, n.Value)
		}
		s.active[n.Alias] = true
		defer delete(s.active, n.Alias)
		return s.walk(n.Alias)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return s.emit(eng.Token{Kind: eng.KindNull})
		}
		return s.walk(n.Content[0])
	case yaml.MappingNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginObject}); err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yaml: line %d: non-scalar mapping key", k.Line)
			}
			if err := s.emit(eng.Token{Kind: eng.KindKey, String: k.Value}); err != nil {
				return err
			}
			if err := s.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginArray}); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return s.scalar(n)
	default:
		return errors.New("yaml: unsupported node kind")
	}
}

func (s *source) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		return s.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		return s.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	default:
		return s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
}

// countNodes counts the parsed nodes without following aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	if n.Kind == yaml.AliasNode {
		return c
	}
	for _, ch := range n.Content {
		c += countNodes(ch)
	}
	return c
}
