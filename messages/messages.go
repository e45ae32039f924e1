// Package messages holds the default English text for issue codes. Rules that
// are built without an explicit message fall back to these.
package messages

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator retrieves the message for an issue code. params carries the
// structured parameters of the issue (for example "min" or "expected").
type Translator interface {
	Message(code string, params map[string]any) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(code string, params map[string]any) string

func (f TranslatorFunc) Message(code string, params map[string]any) string { return f(code, params) }

// english is the built-in Translator.
type english struct{ p *message.Printer }

var defaultTranslator Translator = english{p: message.NewPrinter(language.English)}

var current = defaultTranslator

// SetTranslator replaces the Translator. nil restores the default. It is
// meant to be called once during program start-up.
func SetTranslator(tr Translator) {
	if tr == nil {
		current = defaultTranslator
		return
	}
	current = tr
}

// T returns the message for code using the current Translator.
func T(code string, params map[string]any) string { return current.Message(code, params) }

// Default returns the built-in English message, ignoring SetTranslator.
func Default(code string, params map[string]any) string {
	return defaultTranslator.Message(code, params)
}

func (e english) Message(code string, params map[string]any) string {
	switch code {
	case "required":
		return "is required"
	case "invalid_type":
		if want, ok := params["expected"].(string); ok && want != "" {
			return "expected " + want
		}
		return "invalid type"
	case "too_short":
		if n, ok := num(params, "min"); ok {
			return e.p.Sprintf("must be at least %d characters", int64(n))
		}
		return "too short"
	case "too_long":
		if n, ok := num(params, "max"); ok {
			return e.p.Sprintf("must be at most %d characters", int64(n))
		}
		return "too long"
	case "too_small":
		if n, ok := num(params, "min"); ok {
			return "must be at least " + e.number(n)
		}
		return "too small"
	case "too_big":
		if n, ok := num(params, "maxBytes"); ok {
			return "must be at most " + e.bytes(n)
		}
		if n, ok := num(params, "max"); ok {
			return "must be at most " + e.number(n)
		}
		return "too big"
	case "too_few":
		if n, ok := num(params, "min"); ok {
			return e.p.Sprintf("must contain at least %d %s", int64(n), plural(n, "item"))
		}
		return "too few items"
	case "too_many":
		if n, ok := num(params, "max"); ok {
			return e.p.Sprintf("must contain at most %d %s", int64(n), plural(n, "item"))
		}
		return "too many items"
	case "invalid_format":
		if f, ok := params["format"].(string); ok && f != "" {
			return "must be a valid " + f
		}
		return "invalid format"
	case "pattern":
		if re, ok := params["pattern"].(string); ok {
			return "must match " + re
		}
		return "does not match the expected pattern"
	case "invalid_enum":
		if vs, ok := params["values"].([]string); ok && len(vs) > 0 {
			return "must be one of " + strings.Join(vs, ", ")
		}
		return "is not an allowed value"
	case "unknown_key":
		return "unknown key"
	case "duplicate_key":
		return "duplicate key"
	case "uniqueness":
		return "duplicate value"
	case "parse_error":
		return "could not be parsed"
	case "truncated":
		return "input too large"
	case "custom":
		return "is invalid"
	}
	return code
}

// number renders integral values without a fraction and groups thousands.
func (e english) number(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return e.p.Sprintf("%d", int64(f))
	}
	return e.p.Sprintf("%v", f)
}

func (e english) bytes(n float64) string {
	const unit = 1024
	if n < unit {
		return e.p.Sprintf("%d bytes", int64(n))
	}
	units := []string{"KiB", "MiB", "GiB", "TiB"}
	v := n / unit
	i := 0
	for v >= unit && i < len(units)-1 {
		v /= unit
		i++
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d %s", int64(v), units[i])
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}

func plural(n float64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func num(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
