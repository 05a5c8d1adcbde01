package density

import "errors"

var (
	// ErrEmptyInput is returned when a grid is requested for zero densities.
	ErrEmptyInput = errors.New("no densities supplied")

	// ErrEmptyGroup is returned when an aggregation selects zero members.
	// Callers are expected to skip empty groups before aggregating.
	ErrEmptyGroup = errors.New("group has no members")
)
