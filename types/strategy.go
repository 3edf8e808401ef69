package types

// TagSet is the set of strategy tags a property participates in for
// population or serialization. A nil set means "every strategy".
type TagSet []string

// Allows reports whether strategy passes the filter. An empty strategy is the
// wildcard caller and always passes.
func (t TagSet) Allows(strategy string) bool {
	if t == nil || strategy == "" {
		return true
	}
	for _, tag := range t {
		if tag == strategy {
			return true
		}
	}
	return false
}

// Tags is a convenience constructor for TagSet literals.
func Tags(tags ...string) TagSet {
	if tags == nil {
		return TagSet{}
	}
	return TagSet(tags)
}
