package dsl

import (
	"encoding/json"
	"math"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	formskema "github.com/reoring/formskema"
)

// Strict conversions accept only the Go types a decoder produces for the kind.
// Coercing conversions additionally accept the string forms a form submits.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), true
	case string, bool, float32, float64,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s, err := cast.ToStringE(v)
		return s, err == nil
	default:
		return "", false
	}
}

func asNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		default:
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceNumber(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return asNumber(v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "on", "yes":
			return true, true
		case "off", "no", "":
			return false, true
		}
		b, err := cast.ToBoolE(strings.TrimSpace(x))
		return b, err == nil
	default:
		return false, false
	}
}

func asFile(v any) (formskema.File, bool) {
	switch x := v.(type) {
	case formskema.File:
		return x, true
	case *formskema.File:
		if x == nil {
			return formskema.File{}, false
		}
		return *x, true
	case *multipart.FileHeader:
		if x == nil {
			return formskema.File{}, false
		}
		return formskema.FileFromHeader(x), true
	case map[string]any:
		name, ok := x["name"].(string)
		if !ok || name == "" {
			return formskema.File{}, false
		}
		size, ok := asNumber(x["size"])
		if !ok || size < 0 || size != math.Trunc(size) {
			return formskema.File{}, false
		}
		f := formskema.File{Name: name, Size: int64(size)}
		if ct, ok := x["type"].(string); ok {
			f.ContentType = ct
		}
		return f, true
	default:
		return formskema.File{}, false
	}
}

func asFileList(v any) ([]formskema.File, bool) {
	if f, ok := asFile(v); ok {
		return []formskema.File{f}, true
	}
	switch x := v.(type) {
	case []formskema.File:
		return append([]formskema.File{}, x...), true
	case []*multipart.FileHeader:
		out := make([]formskema.File, 0, len(x))
		for _, fh := range x {
			f, ok := asFile(fh)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	case []any:
		out := make([]formskema.File, 0, len(x))
		for _, it := range x {
			f, ok := asFile(it)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}
