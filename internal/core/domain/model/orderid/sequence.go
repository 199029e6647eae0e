package orderid

import (
	"fmt"
	"math"

	"storefront/internal/pkg/errs"
)

// sequenceWidth is a minimum; larger values widen the identifier.
const sequenceWidth = 4

// Sequence is a counter value handed out by the counter store. Valid sequences start at 1.
type Sequence int64

// NewSequence validates a raw counter value.
func NewSequence(value int64) (Sequence, error) {
	s := Sequence(value)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate rejects zero and negative values.
func (s Sequence) Validate() error {
	if s < 1 {
		return errs.NewValueIsOutOfRangeError("sequence", int64(s), 1, int64(math.MaxInt64))
	}
	return nil
}

// String renders the sequence zero-padded to four digits.
func (s Sequence) String() string {
	return fmt.Sprintf("%0*d", sequenceWidth, int64(s))
}
