// Command nanomodel inspects, validates and normalizes model documents
// against the sample library schemas.
//
// Usage:
//
//	nanomodel types
//	nanomodel validate members.yaml --type User
//	nanomodel normalize catalog.json --type Library --strategy public --write
//	nanomodel diff old.yaml new.yaml --type Library
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
