package base

import "errors"

var (
	// ErrStrategyNotFound is returned when the requested strategy is not
	// registered
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrCustomSettingsUnsupported is returned when custom settings are
	// supplied to a strategy that takes none
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrInvalidCustomSettings is returned when a custom setting cannot be
	// parsed or is out of range
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
)

// Strategy is the base implementation shared by every strategy. It holds
// the symbol filter; an empty filter accepts every symbol
type Strategy struct {
	symbol string
}
