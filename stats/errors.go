package stats

import (
	"fmt"
)

// ComputationError reports an input that violates an invariant the engine
// relies on: a non-finite metric value, or out-of-range rating data reaching
// the differential formula. It signals a data-integrity defect in the layer
// that produced the records, not a recoverable runtime condition — absence
// of data ("no rounds yet", "no hole detail") is never an error.
type ComputationError struct {
	Field  string // offending field name
	Index  int    // round index, -1 when not tied to a specific round
	Reason string
}

func (e *ComputationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("stats: invalid %s at round %d: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("stats: invalid %s: %s", e.Field, e.Reason)
}
