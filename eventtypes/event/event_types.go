package event

// Base is embedded by every event kind and carries the fields shared by
// all of them. Timestamp is a logical tick, not wall-clock time; events
// generated while processing another event inherit its timestamp
type Base struct {
	Timestamp int64
	Symbol    string
	Reasons   []string
}
