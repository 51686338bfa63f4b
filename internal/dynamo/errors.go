package dynamo

import "errors"

// Sentinel errors for invariant violations.
var (
	// ErrNonFinite indicates a NaN or infinite velocity or position.
	ErrNonFinite = errors.New("dynamo: non-finite value (NaN or Inf detected)")

	// ErrAccelerated indicates friction increased the magnitude of a velocity.
	ErrAccelerated = errors.New("dynamo: decay increased velocity magnitude")

	// ErrZeroTimestamp indicates a pan was signalled with the reserved zero time.
	ErrZeroTimestamp = errors.New("dynamo: zero timestamp is reserved")

	// ErrNegativeInterval indicates an integration step with end before start.
	ErrNegativeInterval = errors.New("dynamo: negative time interval")

	// ErrUnsupportedCurve indicates a curve order that has no implementation.
	ErrUnsupportedCurve = errors.New("dynamo: hermite interpolation not implemented")

	// ErrUnreachable indicates a branch that the selection logic should never produce.
	ErrUnreachable = errors.New("dynamo: unreachable branch")

	// ErrNaNCompare indicates an event comparison involving NaN.
	ErrNaNCompare = errors.New("dynamo: NaN in event comparison")
)

// InvariantError wraps an invariant violation with the operation that hit it.
type InvariantError struct {
	Op      string
	Wrapped error
}

func (e *InvariantError) Error() string {
	return e.Op + ": " + e.Wrapped.Error()
}

func (e *InvariantError) Unwrap() error {
	return e.Wrapped
}

// Fail panics with an *InvariantError. It never returns.
func Fail(op string, err error) {
	panic(&InvariantError{Op: op, Wrapped: err})
}

// AsInvariant extracts an *InvariantError from a recovered panic value.
func AsInvariant(r any) (*InvariantError, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var inv *InvariantError
	if errors.As(err, &inv) {
		return inv, true
	}
	return nil, false
}
