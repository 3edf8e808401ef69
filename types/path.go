package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Path addresses a property inside a model tree. Each segment is either a
// string (a property name) or an int (an index into an array property).
type Path []any

// ParsePath builds a Path from a mix of arguments. Strings are split on dots
// and purely numeric parts become indexes, so ParsePath("books.1.title") and
// ParsePath("books", 1, "title") are the same path. Nested Path, []any and
// []string arguments are flattened. Integral numbers of any width become int.
//
// Segments of any other type are kept as-is; they never resolve.
func ParsePath(parts ...any) Path {
	var path Path
	for _, part := range parts {
		path = appendSegments(path, part)
	}
	return path
}

func appendSegments(path Path, part any) Path {
	switch v := part.(type) {
	case nil:
		return path
	case string:
		if v == "" {
			return path
		}
		for _, s := range strings.Split(v, ".") {
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				path = append(path, n)
				continue
			}
			path = append(path, s)
		}
		return path
	case Path:
		for _, s := range v {
			path = appendSegments(path, s)
		}
		return path
	case []any:
		for _, s := range v {
			path = appendSegments(path, s)
		}
		return path
	case []string:
		for _, s := range v {
			path = appendSegments(path, s)
		}
		return path
	}

	if n, ok := toIndex(part); ok {
		return append(path, n)
	}
	return append(path, part)
}

// toIndex normalizes integral numbers to int. Floats only qualify when they
// carry no fraction, which is what JSON decoders hand back for indexes.
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		f := float64(n)
		if f == math.Trunc(f) {
			return int(f), true
		}
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// Append returns a new path with seg added at the end. The receiver is never
// modified, so prefixes can be shared while walking a tree.
func (p Path) Append(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !segmentEqual(p[i], other[i]) {
			return false
		}
	}
	return true
}

// segmentEqual compares names and indexes. Segments of any other type never
// match, since they may not be comparable.
func segmentEqual(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int:
		y, ok := b.(int)
		return ok && x == y
	}
	return false
}

// String renders the path in dotted form, e.g. "books.1.title".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = fmt.Sprintf("%v", seg)
	}
	return strings.Join(parts, ".")
}

// UnmarshalJSON decodes a JSON array of names and indexes. Numbers come back
// as int rather than float64.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode path: %w", err)
	}
	path := make(Path, 0, len(raw))
	for _, seg := range raw {
		if n, ok := toIndex(seg); ok {
			path = append(path, n)
			continue
		}
		path = append(path, seg)
	}
	*p = path
	return nil
}
