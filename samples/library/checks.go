package library

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/arthur-debert/nanomodel/nanomodel/recipe"
)

// Required fails for nil, "" and empty lists.
func Required() recipe.Resolver {
	return recipe.Check(func(value any) bool {
		switch v := value.(type) {
		case nil:
			return false
		case string:
			return v != ""
		case []any:
			return len(v) > 0
		}
		return true
	})
}

// MaxLength fails for strings longer than n runes. Other values pass.
func MaxLength(n int) recipe.Resolver {
	return recipe.Check(func(value any) bool {
		s, ok := value.(string)
		return !ok || utf8.RuneCountInString(s) <= n
	})
}

// Matches fails for non-empty strings that do not match re. Empty values are
// left to Required.
func Matches(re *regexp.Regexp) recipe.Resolver {
	return recipe.Check(func(value any) bool {
		s, ok := value.(string)
		return !ok || s == "" || re.MatchString(s)
	})
}

// Between fails for integers outside [lo, hi]. nil passes.
func Between(lo, hi int64) recipe.Resolver {
	return recipe.Check(func(value any) bool {
		n, ok := value.(int64)
		return !ok || (n >= lo && n <= hi)
	})
}

// DuplicateKeyError is what a store reports when a unique key is taken.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key: " + e.Key
}

// DuplicateKey matches a *DuplicateKeyError for key.
func DuplicateKey(key string) recipe.Resolver {
	return recipe.Match(func(err error) bool {
		var dup *DuplicateKeyError
		return errors.As(err, &dup) && dup.Key == key
	})
}
