package lazy

import (
	"fmt"

	"github.com/glaze-ml/glaze/internal/tensor"
)

// Verify that AddedDiag implements the variant contract.
var _ Matrix[float64, tensor.Backend] = (*AddedDiag[float64, tensor.Backend])(nil)

// AddedDiag is the lazy sum of an arbitrary structured matrix and a diagonal
// matrix. It is the representation Diag.Add produces when the other operand
// is not diagonal: the sum is kept composed, and every operation distributes
// over the two terms, so nothing is ever densified implicitly.
type AddedDiag[T tensor.DType, B tensor.Backend] struct {
	term Matrix[T, B]
	diag *Diag[T, B]
}

// NewAddedDiag composes term + diag lazily. Both operands must agree on size.
func NewAddedDiag[T tensor.DType, B tensor.Backend](term Matrix[T, B], diag *Diag[T, B]) (*AddedDiag[T, B], error) {
	if err := checkSquareSize(term.Size()); err != nil {
		return nil, err
	}
	if !term.Size().Equal(diag.Size()) {
		return nil, fmt.Errorf("%w: term size %v vs diagonal size %v",
			ErrShapeMismatch, term.Size(), diag.Size())
	}
	return &AddedDiag[T, B]{term: term, diag: diag}, nil
}

// MatMul distributes the product: (A + D) @ rhs = A @ rhs + D @ rhs.
func (a *AddedDiag[T, B]) MatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	left, err := a.term.MatMul(rhs)
	if err != nil {
		return nil, err
	}
	right, err := a.diag.MatMul(rhs)
	if err != nil {
		return nil, err
	}
	return left.Add(right), nil
}

// TMatMul distributes the transposed product over both terms.
func (a *AddedDiag[T, B]) TMatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	left, err := a.term.TMatMul(rhs)
	if err != nil {
		return nil, err
	}
	right, err := a.diag.TMatMul(rhs)
	if err != nil {
		return nil, err
	}
	return left.Add(right), nil
}

// QuadFormDerivative concatenates the per-term derivatives, term parameters
// first, matching constructor-argument order.
func (a *AddedDiag[T, B]) QuadFormDerivative(leftVecs, rightVecs *tensor.Tensor[T, B]) ([]*tensor.Tensor[T, B], error) {
	termDerivs, err := a.term.QuadFormDerivative(leftVecs, rightVecs)
	if err != nil {
		return nil, err
	}
	diagDerivs, err := a.diag.QuadFormDerivative(leftVecs, rightVecs)
	if err != nil {
		return nil, err
	}
	return append(termDerivs, diagDerivs...), nil
}

// Size returns the shared size of the two terms.
func (a *AddedDiag[T, B]) Size() tensor.Shape {
	return a.term.Size()
}

// Transpose transposes the non-diagonal term; the diagonal is self-adjoint.
func (a *AddedDiag[T, B]) Transpose() Matrix[T, B] {
	return &AddedDiag[T, B]{term: a.term.Transpose(), diag: a.diag}
}

// GetIndices sums the gathered entries of both terms.
func (a *AddedDiag[T, B]) GetIndices(rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error) {
	left, err := a.term.GetIndices(rows, cols)
	if err != nil {
		return nil, err
	}
	right, err := a.diag.GetIndices(rows, cols)
	if err != nil {
		return nil, err
	}
	return left.Add(right), nil
}

// BatchGetIndices sums the gathered entries of both terms.
func (a *AddedDiag[T, B]) BatchGetIndices(batch, rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error) {
	left, err := a.term.BatchGetIndices(batch, rows, cols)
	if err != nil {
		return nil, err
	}
	right, err := a.diag.BatchGetIndices(batch, rows, cols)
	if err != nil {
		return nil, err
	}
	return left.Add(right), nil
}

// AddDiag folds the added vector into the diagonal term.
func (a *AddedDiag[T, B]) AddDiag(added *tensor.Tensor[T, B]) (Matrix[T, B], error) {
	folded, err := a.diag.AddDiag(added)
	if err != nil {
		return nil, err
	}
	return &AddedDiag[T, B]{term: a.term, diag: folded.(*Diag[T, B])}, nil
}

// Add folds a diagonal operand into the diagonal term. Summing with any
// other structured matrix would need a general sum composite, which is
// outside the implemented variant set; densifying instead is forbidden, so
// the composition is refused.
func (a *AddedDiag[T, B]) Add(other Matrix[T, B]) (Matrix[T, B], error) {
	if od, ok := other.(*Diag[T, B]); ok {
		folded, err := a.diag.Add(od)
		if err != nil {
			return nil, err
		}
		return &AddedDiag[T, B]{term: a.term, diag: folded.(*Diag[T, B])}, nil
	}
	return nil, fmt.Errorf("%w: cannot add %T to a matrix-plus-diagonal composite", ErrUnsupported, other)
}

// Diag sums the diagonals of the two terms.
func (a *AddedDiag[T, B]) Diag() (*tensor.Tensor[T, B], error) {
	termDiag, err := a.term.Diag()
	if err != nil {
		return nil, err
	}
	diag, err := a.diag.Diag()
	if err != nil {
		return nil, err
	}
	return termDiag.Add(diag), nil
}

// Evaluate materializes both terms densely and adds them. Explicitly
// requested densification is the one place the composite may go dense.
func (a *AddedDiag[T, B]) Evaluate() (*tensor.Tensor[T, B], error) {
	left, err := a.term.Evaluate()
	if err != nil {
		return nil, err
	}
	right, err := a.diag.Evaluate()
	if err != nil {
		return nil, err
	}
	return left.Add(right), nil
}

// DType returns the element type shared by the terms.
func (a *AddedDiag[T, B]) DType() tensor.DataType {
	return a.diag.DType()
}

// Device returns the execution target shared by the terms.
func (a *AddedDiag[T, B]) Device() tensor.Device {
	return a.diag.Device()
}
