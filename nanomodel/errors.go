package nanomodel

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/nanomodel/types"
)

// DefaultValidationCode is the code carried by a ValidationError unless the
// caller asks for another one.
const DefaultValidationCode = 422

var (
	// ErrFrozen is matched by every *FrozenError.
	ErrFrozen = errors.New("property is frozen")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// FrozenError is returned by any write to a frozen property.
type FrozenError struct {
	Prop string
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("property %q is frozen", e.Prop)
}

// Is reports whether target is ErrFrozen.
func (e *FrozenError) Is(target error) bool {
	return target == ErrFrozen
}

// ValidationError is returned by Model.Validate and Model.Handle when the tree
// holds error codes afterwards. Errors is the flattened list produced by
// CollectErrors.
type ValidationError struct {
	Code   int
	Errors types.ErrorList
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed (%d): %s", e.Code, e.Errors[0])
	}
	return fmt.Sprintf("validation failed (%d): %d errors", e.Code, len(e.Errors))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
