package common

// IsValid returns whether the side is an actionable buy or sell
func (s Side) IsValid() bool {
	return s == Buy || s == Sell
}

// Sign returns +1 for buys and -1 for sells, letting position math treat
// both directions uniformly
func (s Side) Sign() int64 {
	if s == Sell {
		return -1
	}
	return 1
}

// String implements the stringer interface
func (s Side) String() string {
	return string(s)
}

// String implements the stringer interface
func (k Kind) String() string {
	switch k {
	case KindTick:
		return "TICK"
	case KindSignal:
		return "SIGNAL"
	case KindOrder:
		return "ORDER"
	case KindFill:
		return "FILL"
	}
	return "UNKNOWN"
}
