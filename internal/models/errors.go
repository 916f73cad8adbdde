package models

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-range trip parameters.
	ErrInvalidInput = errors.New("invalid trip parameters")

	// ErrNoActiveConfig is returned when no pricing config is active.
	// Calculations never fall back to a default price.
	ErrNoActiveConfig = errors.New("no active pricing config")

	// ErrNoPricingForDay is returned when the active config has no fare rule
	// for the requested day of week.
	ErrNoPricingForDay = errors.New("no pricing for this day")

	// ErrConfigCorrupt means a read found more than one active config. The
	// store's activation transaction should make this impossible, so it is
	// surfaced as a server-side failure rather than resolved by picking one.
	ErrConfigCorrupt = errors.New("pricing config store corrupt: multiple active configs")

	// ErrConfigNotFound is returned for lookups of a missing config.
	ErrConfigNotFound = errors.New("pricing config not found")

	// ErrDuplicateName is returned when a config name is already taken.
	ErrDuplicateName = errors.New("pricing config name already exists")
)
