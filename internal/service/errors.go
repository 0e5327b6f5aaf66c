package service

import (
	"errors"
	"fmt"
)

// Failure outcomes are distinguishable to callers and never retried
// automatically: they reflect either bad input or a stock state the caller
// must re-observe before retrying manually. Storage failures are returned
// as-is and are fatal to the current operation.
var (
	ErrDuplicateName     = errors.New("a category with that name already exists")
	ErrUnknownCategory   = errors.New("category not found")
	ErrUnknownProduct    = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports malformed input rejected before any storage write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
