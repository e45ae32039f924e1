package formskema

import (
	"io"

	eng "github.com/reoring/formskema/internal/engine"
	jsonsrc "github.com/reoring/formskema/source/json"
	yamlsrc "github.com/reoring/formskema/source/yaml"
)

// Source abstracts over raw input formats. It yields the tokens of a single
// document; NumberMode controls how number tokens are materialized.
type Source interface {
	NumberMode() NumberMode
	tokens() eng.TokenSource
}

type tokenSource struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (s tokenSource) NumberMode() NumberMode   { return s.numMode }
func (s tokenSource) tokens() eng.TokenSource { return s.inner }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return tokenSource{inner: jsonsrc.NewReader(r)} }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return tokenSource{inner: jsonsrc.NewBytes(b)} }

// YAMLReader wraps an io.Reader as a YAML Source (first document only).
func YAMLReader(r io.Reader) Source { return tokenSource{inner: yamlsrc.NewReader(r)} }

// YAMLBytes wraps a byte slice as a YAML Source (first document only).
func YAMLBytes(b []byte) Source { return tokenSource{inner: yamlsrc.NewBytes(b)} }

// WithNumberMode returns a Source that materializes numbers with mode m.
func WithNumberMode(s Source, m NumberMode) Source {
	return tokenSource{inner: s.tokens(), numMode: m}
}
