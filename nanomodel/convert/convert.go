// Package convert holds the named cast handlers a property can refer to by
// name. Handlers never fail: a value that cannot be converted becomes nil.
package convert

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"
)

// Func converts a raw value. It returns nil when the value cannot be
// converted.
type Func func(value any) any

// Built-in handler names.
const (
	String  = "string"
	Integer = "integer"
	Float   = "float"
	Boolean = "boolean"
	Date    = "date"
)

var (
	mu       sync.RWMutex
	registry = map[string]Func{
		String:  ToString,
		Integer: ToInteger,
		Float:   ToFloat,
		Boolean: ToBoolean,
		Date:    ToDate,
	}
)

// Register adds a named handler. Names follow the same rules as format
// names: lowercase letters, digits, dashes and underscores.
func Register(name string, fn Func) error {
	if !isValidName(name) {
		return fmt.Errorf("invalid converter name %q: must be lowercase alphanumeric with dashes and underscores only", name)
	}
	if fn == nil {
		return fmt.Errorf("converter %q: nil function", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("converter %q already registered", name)
	}
	registry[name] = fn
	return nil
}

// Lookup returns the handler registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// ToString converts scalars to string.
func ToString(value any) any {
	if value == nil {
		return nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil
	}
	return s
}

// ToInteger converts to int64. Strings are parsed, floats are truncated.
func ToInteger(value any) any {
	if value == nil {
		return nil
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return nil
	}
	return n
}

// ToFloat converts to float64.
func ToFloat(value any) any {
	if value == nil {
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	return f
}

// ToBoolean converts to bool. Accepts the usual string spellings
// ("true", "1", "f", ...).
func ToBoolean(value any) any {
	if value == nil {
		return nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil
	}
	return b
}

// ToDate converts to time.Time. Strings are parsed with the layouts cast
// knows about (RFC 3339 and friends).
func ToDate(value any) any {
	if value == nil {
		return nil
	}
	if t, ok := value.(time.Time); ok {
		return t
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		return nil
	}
	return t
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
