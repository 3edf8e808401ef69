package nanomodel

import "github.com/arthur-debert/nanomodel/types"

// GetProp resolves a path to a property. The path may be given as dotted
// strings, names and indexes, a types.Path or a []any:
//
//	m.GetProp("books.1.title")
//	m.GetProp("books", 1, "title")
//
// An index only selects which nested model the following names are looked up
// in. A path ending at an index returns the array property itself. Unknown
// names, misplaced or out-of-range indexes and nil elements give nil.
func (m *Model) GetProp(path ...any) *Prop {
	return m.resolve(types.ParsePath(path...))
}

// HasProp reports whether GetProp resolves path.
func (m *Model) HasProp(path ...any) bool {
	return m.GetProp(path...) != nil
}

func (m *Model) resolve(path types.Path) *Prop {
	if m == nil || len(path) == 0 {
		return nil
	}

	owner := m
	for i := 0; i < len(path); i++ {
		name, ok := path[i].(string)
		if !ok {
			return nil
		}
		p := owner.index[name]
		if p == nil {
			return nil
		}
		if i == len(path)-1 {
			return p
		}

		switch v := p.current().(type) {
		case *Model:
			if v == nil {
				return nil
			}
			owner = v
		case []any:
			idx, ok := path[i+1].(int)
			if !ok || idx < 0 || idx >= len(v) {
				return nil
			}
			i++
			if i == len(path)-1 {
				return p
			}
			el, ok := v[idx].(*Model)
			if !ok || el == nil {
				return nil
			}
			owner = el
		default:
			return nil
		}
	}
	return nil
}
