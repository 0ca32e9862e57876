package track

import "errors"

// Error kinds reported by the reconstruction stages. Stages wrap these with
// context, so callers should test with errors.Is.
var (
	// ErrShapeMismatch reports arrays that must be index-aligned but differ in length.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDegenerateInput reports too few or coincident points for the
	// requested operation, including zero-length segments and paths.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrEmptyBoundary reports a boundary or path with no points.
	ErrEmptyBoundary = errors.New("empty boundary")

	// ErrInsufficientSamples reports fewer than two bank-angle samples.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrInvalidParameter reports an option outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")
)
