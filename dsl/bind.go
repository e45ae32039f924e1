package dsl

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// Bind wraps an object schema so Parse returns struct T instead of a map.
// Struct fields are matched by the `formskema:"name=..."` tag, then the json
// tag, then the Go field name. Nested objects and arrays of objects are
// projected recursively.
func Bind[T any](o *ObjectSchema) (formskema.Schema[T], error) {
	var t T
	rt := reflect.TypeOf(t)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: Bind[T] requires a struct type, got %v", rt)
	}
	return &typedObjectSchema[T]{inner: o, t: rt}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](o *ObjectSchema) formskema.Schema[T] {
	s, err := Bind[T](o)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema adapts an ObjectSchema to a struct T.
type typedObjectSchema[T any] struct {
	inner *ObjectSchema
	t     reflect.Type
}

func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.t).Elem()
	if err := assign(rv, m, ""); err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

func (s *typedObjectSchema[T]) Shape() formskema.Shape { return formskema.ShapeObject }

func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// assign stores val into dst, converting maps to structs and slices
// element-wise. path is only used for error reporting.
func assign(dst reflect.Value, val any, path string) error {
	if val == nil {
		return nil
	}
	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(dst.Type()):
		dst.Set(vv)
		return nil
	case dst.Kind() == reflect.Pointer:
		p := reflect.New(dst.Type().Elem())
		if err := assign(p.Elem(), val, path); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	case dst.Kind() == reflect.Struct && vv.Kind() == reflect.Map:
		m, ok := val.(map[string]any)
		if !ok {
			break
		}
		for i := 0; i < dst.NumField(); i++ {
			sf := dst.Type().Field(i)
			if !sf.IsExported() {
				continue
			}
			key := structKey(sf)
			if key == "-" {
				continue
			}
			if fv, ok := m[key]; ok {
				if err := assign(dst.Field(i), fv, formskema.JoinPath(path, key)); err != nil {
					return err
				}
			}
		}
		return nil
	case dst.Kind() == reflect.Slice && (vv.Kind() == reflect.Slice || vv.Kind() == reflect.Array):
		out := reflect.MakeSlice(dst.Type(), vv.Len(), vv.Len())
		for i := 0; i < vv.Len(); i++ {
			if err := assign(out.Index(i), vv.Index(i).Interface(), formskema.JoinPath(path, fmt.Sprint(i))); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case isNumeric(vv.Kind()) && isNumeric(dst.Kind()):
		if fitsNumeric(vv, dst) {
			dst.Set(vv.Convert(dst.Type()))
			return nil
		}
	case vv.Kind() == dst.Kind() && (vv.Kind() == reflect.String || vv.Kind() == reflect.Bool):
		dst.Set(vv.Convert(dst.Type()))
		return nil
	}
	return formskema.Issues{{Path: path, Code: formskema.CodeInvalidType, Message: fmt.Sprintf("cannot bind %T to %s", val, dst.Type())}}
}

// structKey resolves the object key a struct field binds to.
func structKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("formskema"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// fitsNumeric reports whether v converts to dst's kind without losing a
// fractional part or overflowing.
func fitsNumeric(v, dst reflect.Value) bool {
	switch {
	case v.CanFloat():
		f := v.Float()
		switch {
		case dst.CanInt():
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !dst.OverflowInt(int64(f))
		case dst.CanUint():
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f))
		default:
			return !dst.OverflowFloat(f)
		}
	case v.CanInt():
		i := v.Int()
		switch {
		case dst.CanInt():
			return !dst.OverflowInt(i)
		case dst.CanUint():
			return i >= 0 && !dst.OverflowUint(uint64(i))
		}
	case v.CanUint():
		u := v.Uint()
		switch {
		case dst.CanInt():
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		case dst.CanUint():
			return !dst.OverflowUint(u)
		}
	}
	return true
}
