package common

import "errors"

// Side describes the direction of intent carried by signals, orders and fills
type Side string

const (
	// Buy is an intent to increase exposure
	Buy Side = "BUY"
	// Sell is an intent to decrease exposure, or open a short when no
	// position is held
	Sell Side = "SELL"
)

// Kind enumerates the closed set of event kinds flowing through the engine.
// The declaration order doubles as the same-timestamp processing priority:
// ticks drain before the signals they caused, signals before orders,
// orders before fills
type Kind uint8

const (
	// KindTick is a single price observation for one symbol
	KindTick Kind = iota
	// KindSignal is a strategy's declaration of trading intent
	KindSignal
	// KindOrder is a risk-approved instruction to transact
	KindOrder
	// KindFill is the simulated execution result of an order
	KindFill
)

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it
	// shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDirection is returned when a side is neither buy nor sell
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrPriceNotPositive is returned when constructing an event with a
	// zero or negative price
	ErrPriceNotPositive = errors.New("price must be greater than zero")
	// ErrQuantityNotPositive is returned when constructing an event with a
	// zero or negative quantity
	ErrQuantityNotPositive = errors.New("quantity must be greater than zero")
	// ErrNegativeTimestamp is returned when constructing an event before the
	// beginning of logical time
	ErrNegativeTimestamp = errors.New("timestamp cannot be negative")
	// ErrUnsetSymbol is returned when constructing an event without a symbol
	ErrUnsetSymbol = errors.New("symbol unset")
)

// Event is implemented by every event kind that can enter the queue
type Event interface {
	GetTimestamp() int64
	GetSymbol() string
	GetKind() Kind
	GetReason() string
	AppendReason(string)
}

// Directioner dictates the side of an event
type Directioner interface {
	SetDirection(Side)
	GetDirection() Side
}
