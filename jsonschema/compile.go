package jsonschema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	sj "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const resourceURL = "formskema.json"

// printer renders validator messages in English.
var printer = message.NewPrinter(language.English)

// Compiled is an exported document checked by a full JSON Schema
// implementation. It validates plain JSON values (float64 numbers).
type Compiled struct {
	doc *Schema
	sch *sj.Schema
}

// Compile round-trips s through JSON and compiles it with a draft 2020-12
// compiler. A failure here means the export produced an invalid document.
func Compile(s *Schema) (*Compiled, error) {
	if s == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}
	c := sj.NewCompiler()
	c.DefaultDraft(sj.Draft2020)
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Compiled{doc: s, sch: sch}, nil
}

// Schema returns the document this validator was compiled from.
func (c *Compiled) Schema() *Schema { return c.doc }

// Validate checks v and returns leaf failures keyed by dotted instance path
// ("" for the root). A nil map means v is valid.
func (c *Compiled) Validate(v any) map[string][]string {
	err := c.sch.Validate(v)
	if err == nil {
		return nil
	}
	out := map[string][]string{}
	var ve *sj.ValidationError
	if !errors.As(err, &ve) {
		out[""] = []string{err.Error()}
		return out
	}
	collect(ve, out)
	for k := range out {
		sort.Strings(out[k])
	}
	return out
}

// ValidateJSON decodes data and validates it.
func (c *Compiled) ValidateJSON(data []byte) (map[string][]string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return c.Validate(v), nil
}

func collect(err *sj.ValidationError, out map[string][]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		path := strings.Join(err.InstanceLocation, ".")
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			out[path] = append(out[path], msg)
		}
	}
	for _, cause := range err.Causes {
		collect(cause, out)
	}
}
