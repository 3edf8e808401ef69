package types

import (
	"fmt"
	"strings"
)

// ErrorEntry associates an error code with the property addressed by Path.
// It is the wire format exchanged between a model tree and its callers.
type ErrorEntry struct {
	Path Path `json:"path" yaml:"path"`
	Code int  `json:"code" yaml:"code"`
}

// String returns "path: code".
func (e ErrorEntry) String() string {
	return fmt.Sprintf("%s: %d", e.Path, e.Code)
}

// ErrorList is an ordered list of error entries. Order is the depth-first
// declaration order of the tree that produced it.
type ErrorList []ErrorEntry

// Codes returns every code in the list, in order.
func (l ErrorList) Codes() []int {
	codes := make([]int, len(l))
	for i, e := range l {
		codes[i] = e.Code
	}
	return codes
}

// For returns the codes recorded for the given path.
func (l ErrorList) For(path ...any) []int {
	target := ParsePath(path...)
	var codes []int
	for _, e := range l {
		if e.Path.Equal(target) {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// String renders one entry per line.
func (l ErrorList) String() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.String())
	}
	return b.String()
}
