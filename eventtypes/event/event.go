package event

import (
	"fmt"
	"strings"

	"github.com/ticklab/backsim/common"
)

// GetTimestamp returns the logical timestamp of the event
func (b *Base) GetTimestamp() int64 {
	return b.Timestamp
}

// GetSymbol returns the instrument the event relates to
func (b *Base) GetSymbol() string {
	return b.Symbol
}

// GetReason returns the audit trail of why the event exists
func (b *Base) GetReason() string {
	return strings.Join(b.Reasons, ". ")
}

// AppendReason adds an entry to the event's audit trail
func (b *Base) AppendReason(y string) {
	b.Reasons = append(b.Reasons, y)
}

// AppendReasonf adds a formatted entry to the event's audit trail
func (b *Base) AppendReasonf(format string, v ...interface{}) {
	b.Reasons = append(b.Reasons, fmt.Sprintf(format, v...))
}

// Validate checks the shared fields all event kinds require
func (b *Base) Validate() error {
	if b.Timestamp < 0 {
		return fmt.Errorf("%w: %d", common.ErrNegativeTimestamp, b.Timestamp)
	}
	if b.Symbol == "" {
		return common.ErrUnsetSymbol
	}
	return nil
}
