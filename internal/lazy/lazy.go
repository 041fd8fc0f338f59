// Package lazy implements structured matrices that are never stored densely.
//
// A lazy matrix is a symbolic square matrix of shape (batch?, n, n) defined
// by the tensors that parametrize it. Variants implement the Matrix contract
// with closed-form shortcuts so that generic numerical algorithms
// (conjugate gradients, log-determinant estimators, samplers) can operate on
// any variant, or composition of variants, without materializing anything.
package lazy

import (
	"fmt"

	"github.com/glaze-ml/glaze/internal/tensor"
)

// Matrix is the contract every structured matrix variant satisfies.
//
// Implementations are immutable: every operation returns a fresh value and
// none mutates the receiver or its inputs. All operations are synchronous
// and pure; errors are detected at the offending call and returned, never
// recovered internally.
type Matrix[T tensor.DType, B tensor.Backend] interface {
	// MatMul computes self @ rhs exactly. rhs is a vector (n,), a matrix
	// (n, k), or a batch (batch, n, k); its row dimension must match the
	// matrix's trailing dimension.
	MatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	// TMatMul computes transpose(self) @ rhs. For self-adjoint variants it
	// is identical to MatMul.
	TMatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	// QuadFormDerivative returns the derivative of the bilinear form
	// leftVecsᵗ · self · rightVecs with respect to each of the matrix's
	// defining parameters, one entry per parameter in constructor-argument
	// order. This supports reverse-mode gradient propagation through the
	// representation without forming the matrix.
	QuadFormDerivative(leftVecs, rightVecs *tensor.Tensor[T, B]) ([]*tensor.Tensor[T, B], error)

	// Size returns (batch, n, n) for batched matrices and (n, n) otherwise.
	Size() tensor.Shape

	// Transpose returns the lazy transpose. Self-adjoint variants may
	// return the receiver.
	Transpose() Matrix[T, B]

	// GetIndices returns the entries at the given coordinate pairs without
	// materializing the matrix. The index tensors must share a shape; the
	// result has that shape.
	GetIndices(rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error)

	// BatchGetIndices is GetIndices with an explicit batch-index tensor,
	// for batched matrices.
	BatchGetIndices(batch, rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error)

	// AddDiag returns self plus a diagonal matrix built from d, broadcast
	// to match self's diagonal shape.
	AddDiag(d *tensor.Tensor[T, B]) (Matrix[T, B], error)

	// Add returns self + other. The concrete representation may change,
	// but the result is never densified implicitly.
	Add(other Matrix[T, B]) (Matrix[T, B], error)

	// Diag extracts the main diagonal as a tensor of shape (n,) or
	// (batch, n). Variants may return their own storage rather than a
	// copy; callers must not mutate the result.
	Diag() (*tensor.Tensor[T, B], error)

	// Evaluate materializes the full dense matrix. This is the expensive
	// fallback path, used only when no closed form is available or dense
	// output is explicitly requested.
	Evaluate() (*tensor.Tensor[T, B], error)

	// DType returns the element type of the defining tensors.
	DType() tensor.DataType

	// Device returns the execution target of the defining tensors.
	Device() tensor.Device
}

// EvaluateDense is the generic dense-evaluation path: it multiplies the
// matrix by an identity, expanded across the batch dimension when present.
// Variants without a denser-than-O(n²) shortcut defer to it.
func EvaluateDense[T tensor.DType, B tensor.Backend](m Matrix[T, B], b B) (*tensor.Tensor[T, B], error) {
	size := m.Size()
	n := size[len(size)-1]

	eye := tensor.Eye[T, B](n, b)
	if len(size) == 3 {
		eye = eye.Unsqueeze(0).Expand(tensor.Shape{size[0], n, n})
	}
	return m.MatMul(eye)
}

// checkSquareSize validates that a size is (n, n) or (batch, n, n).
func checkSquareSize(size tensor.Shape) error {
	switch len(size) {
	case 2, 3:
		if size[len(size)-1] != size[len(size)-2] {
			return fmt.Errorf("%w: size %v is not square in its last two dimensions", ErrShapeMismatch, size)
		}
		return nil
	default:
		return fmt.Errorf("%w: size %v is not a (batch?, n, n) matrix size", ErrShapeMismatch, size)
	}
}
