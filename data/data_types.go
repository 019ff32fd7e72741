package data

import "errors"

var (
	// ErrNoData is returned when a source yields no usable prices
	ErrNoData = errors.New("no price data loaded")
	// ErrPriceColumnMissing is returned when a CSV has neither a close nor
	// a price column
	ErrPriceColumnMissing = errors.New("csv has no close or price column")
	// ErrDuplicateSymbol is returned when the same symbol is loaded twice
	ErrDuplicateSymbol = errors.New("symbol loaded more than once")
	// ErrPriceInvalid is returned when a price fails to parse or is not
	// positive
	ErrPriceInvalid = errors.New("invalid price")
)
