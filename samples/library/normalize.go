package library

import (
	"strings"

	"github.com/arthur-debert/nanomodel/nanomodel/convert"
)

// normalizeISBN strips dashes and spaces and upper-cases the check digit.
func normalizeISBN(value any) any {
	s, ok := convert.ToString(value).(string)
	if !ok {
		return nil
	}
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	return strings.ToUpper(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
