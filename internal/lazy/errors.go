package lazy

import "errors"

// Failure kinds surfaced by lazy matrix operations. Every operation detects
// its own failures and returns them wrapped around one of these sentinels;
// nothing is recovered, retried, or logged.
var (
	// ErrShapeMismatch reports operand dimensions incompatible with the
	// matrix shape.
	ErrShapeMismatch = errors.New("lazy: shape mismatch")

	// ErrIndexOutOfBounds reports gather coordinates outside the matrix.
	ErrIndexOutOfBounds = errors.New("lazy: index out of bounds")

	// ErrIndivisibleBatch reports a batch-sum group size that does not
	// evenly divide the batch dimension.
	ErrIndivisibleBatch = errors.New("lazy: batch size not divisible by group size")

	// ErrNegativeVariance reports a sampling request on a diagonal with
	// negative entries (no real square root).
	ErrNegativeVariance = errors.New("lazy: negative variance entry")

	// ErrUnsupported reports a lazy composition outside the implemented
	// variant set. Densifying implicitly instead is never an option.
	ErrUnsupported = errors.New("lazy: unsupported composition")
)
