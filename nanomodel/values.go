package nanomodel

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/tiendc/go-deepcopy"
)

// Factory produces a fresh value every time it is called. DefaultValue,
// EmptyValue and FakeValue accept either a static value or a Factory (a plain
// func() any works too).
type Factory func() any

// evaluate resolves a declared value. Factories run on every call; static
// slices and maps are copied so two models never share them.
func evaluate(declared any) any {
	switch fn := declared.(type) {
	case Factory:
		return fn()
	case func() any:
		return fn()
	}
	return copyValue(declared)
}

func isFactory(declared any) bool {
	switch declared.(type) {
	case Factory, func() any:
		return true
	}
	return false
}

// copyValue deep-copies slices, maps and pointers. Models are returned as is,
// their identity is managed by the owning property.
func copyValue(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case *Model:
		return t
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = copyValue(el)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr:
		if rv.IsNil() {
			return v
		}
		dst := reflect.New(rv.Type())
		if err := deepcopy.Copy(dst.Interface(), v); err != nil {
			return v
		}
		return dst.Elem().Interface()
	}
	return v
}

// asSlice returns the elements of any slice or array value.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isEmptyValue reports nil, typed nil pointers, "" and zero-length
// collections.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// equalOptions compare nested models by their serialized form and look into
// unexported struct fields instead of panicking on them.
var equalOptions = []cmp.Option{
	cmp.Transformer("Serialize", func(m *Model) map[string]any {
		return m.Serialize()
	}),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func valuesEqual(a, b any) bool {
	return cmp.Equal(a, b, equalOptions...)
}
