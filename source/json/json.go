// Package json provides a JSON token source backed by goccy/go-json.
package json

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/formskema/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// source buffers the input on the first token, checks its syntax as a whole
// and then streams tokens from the buffer. The goccy tokenizer does not check
// separators, so the syntax check cannot be skipped.
type source struct {
	r     io.Reader
	data  []byte
	limit int64
	err   error
	dec   *j.Decoder
	stack []frame
}

var _ eng.ByteLimiter = (*source)(nil)

// NewReader wraps an io.Reader into an engine.TokenSource for JSON. The
// reader is consumed on the first NextToken.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return &source{data: b} }

// LimitBytes bounds the input; longer input fails with a truncated issue.
func (s *source) LimitBytes(n int64) { s.limit = n }

func (s *source) load() error {
	if s.dec != nil || s.err != nil {
		return s.err
	}
	if s.r != nil {
		s.data, s.err = eng.ReadLimited(s.r, s.limit)
		s.r = nil
	} else if s.limit > 0 && int64(len(s.data)) > s.limit {
		s.err = eng.TooLarge("", s.limit)
	}
	if s.err == nil && len(bytes.TrimSpace(s.data)) > 0 && !j.Valid(s.data) {
		s.err = syntaxError(s.data)
	}
	if s.err != nil {
		return s.err
	}
	s.dec = j.NewDecoder(bytes.NewReader(s.data))
	s.dec.UseNumber()
	return nil
}

// syntaxError recovers the decoder's description of invalid input.
func syntaxError(data []byte) error {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("json: unexpected data after top-level value")
}

func (s *source) NextToken() (eng.Token, error) {
	if err := s.load(); err != nil {
		return eng.Token{}, err
	}
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: off}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: off}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: off}, nil
}

// pop closes the current container; the container itself was a value of its parent.
func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// Location reports the decoder offset, or 0 before the input is loaded.
func (s *source) Location() int64 {
	if s.dec == nil {
		return 0
	}
	return s.dec.InputOffset()
}
