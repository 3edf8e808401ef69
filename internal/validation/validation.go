// Package validation checks schema definitions before any model is built
// from them. Problems are reported as plain errors naming the offending
// property.
package validation

import (
	"fmt"
	"reflect"
	"time"
)

// Field is the part of a property definition that can be checked statically.
type Field struct {
	Name string

	// Converter is the named cast handler, empty when none is used.
	Converter string

	// Values holds the static default/empty/fake values keyed by their role.
	// Factories are left out by the caller.
	Values map[string]any
}

// Schema checks a whole schema: its name, every property name, duplicates,
// converter references and static values.
func Schema(name string, fields []Field, knownConverter func(string) bool) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := PropName(f.Name); err != nil {
			return fmt.Errorf("invalid schema %s: %w", name, err)
		}
		if seen[f.Name] {
			return fmt.Errorf("invalid schema %s: duplicate property name: %s", name, f.Name)
		}
		seen[f.Name] = true

		if f.Converter != "" && (knownConverter == nil || !knownConverter(f.Converter)) {
			return fmt.Errorf("invalid schema %s: property %s: unknown converter %q", name, f.Name, f.Converter)
		}

		for role, value := range f.Values {
			if err := StaticValue(value, f.Name+" "+role); err != nil {
				return fmt.Errorf("invalid schema %s: %w", name, err)
			}
		}
	}

	return nil
}

// PropName checks a single property name.
func PropName(name string) error {
	if name == "" {
		return fmt.Errorf("property name cannot be empty")
	}
	if !IsValidPropName(name) {
		return fmt.Errorf("property name %q contains invalid characters", name)
	}
	return nil
}

// IsValidPropName reports whether name can be used as a path segment. Names
// start with a letter or underscore and continue with letters, digits,
// underscores or dashes. Dots would split the segment and a leading digit
// would read as an array index.
func IsValidPropName(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return name != ""
}

// StaticValue ensures a declared default/empty/fake value is plain data:
// scalars, time.Time, pointers to those, and slices or maps of plain data.
func StaticValue(value any, field string) error {
	if value == nil {
		return nil
	}
	return staticValue(reflect.ValueOf(value), field)
}

func staticValue(v reflect.Value, field string) error {
	switch v.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := staticValue(v.Index(i), field); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%s: map keys must be strings, got %s", field, v.Type())
		}
		iter := v.MapRange()
		for iter.Next() {
			if err := staticValue(iter.Value(), field); err != nil {
				return err
			}
		}
		return nil
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return staticValue(v.Elem(), field)
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return nil
		}
		return fmt.Errorf("%s cannot be a struct type, got %s", field, v.Type())
	case reflect.Invalid:
		return nil
	default:
		return fmt.Errorf("%s must be plain data, got %s", field, v.Type())
	}
}
