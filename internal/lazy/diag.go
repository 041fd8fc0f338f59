package lazy

import (
	"fmt"

	"github.com/glaze-ml/glaze/internal/tensor"
)

// Verify that Diag implements the variant contract.
var _ Matrix[float64, tensor.Backend] = (*Diag[float64, tensor.Backend])(nil)

// Diag is a lazy diagonal matrix: the only nonzero entries lie on the main
// diagonal, so every contract operation has a closed form in O(n) or
// O(batch·n) instead of the dense O(n²)/O(n³) path.
//
// It owns exactly one tensor, diag, of shape (n,) for a single matrix or
// (batch, n) for a batch of matrices; diag[i] is the entry at row i,
// column i. The represented matrix is always symmetric.
type Diag[T tensor.DType, B tensor.Backend] struct {
	diag *tensor.Tensor[T, B]

	// batched is fixed at construction; operations branch on it instead of
	// re-inspecting ranks.
	batched bool
}

// NewDiag creates a lazy diagonal matrix from a diagonal vector (n,) or a
// batch of diagonal vectors (batch, n). The tensor becomes owned by the
// returned matrix and must not be mutated afterwards.
func NewDiag[T tensor.DType, B tensor.Backend](diag *tensor.Tensor[T, B]) (*Diag[T, B], error) {
	switch len(diag.Shape()) {
	case 1:
		return &Diag[T, B]{diag: diag}, nil
	case 2:
		return &Diag[T, B]{diag: diag, batched: true}, nil
	default:
		return nil, fmt.Errorf("%w: diagonal must be 1D or 2D, got shape %v", ErrShapeMismatch, diag.Shape())
	}
}

// n returns the matrix dimension.
func (d *Diag[T, B]) n() int {
	s := d.diag.Shape()
	return s[len(s)-1]
}

// batchSize returns the batch dimension. Only valid when batched.
func (d *Diag[T, B]) batchSize() int {
	return d.diag.Shape()[0]
}

// Batched reports whether this matrix carries a batch dimension.
func (d *Diag[T, B]) Batched() bool {
	return d.batched
}

// MatMul computes self @ rhs. Multiplying by a diagonal matrix scales rows
// element-wise, so no cross-row accumulation is needed: a plain vector is
// multiplied directly, and any wider rhs is handled by broadcasting the
// diagonal along the last dimension.
func (d *Diag[T, B]) MatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if err := d.checkRHS(rhs); err != nil {
		return nil, err
	}
	if !d.batched && len(rhs.Shape()) == 1 {
		return d.diag.Mul(rhs), nil
	}
	return d.diag.Unsqueeze(-1).Expand(rhs.Shape()).Mul(rhs), nil
}

// TMatMul computes transpose(self) @ rhs. Diagonal matrices are symmetric,
// so this is exactly MatMul.
func (d *Diag[T, B]) TMatMul(rhs *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return d.MatMul(rhs)
}

// checkRHS validates an operand for MatMul against the matrix shape.
func (d *Diag[T, B]) checkRHS(rhs *tensor.Tensor[T, B]) error {
	n := d.n()
	shape := rhs.Shape()
	switch len(shape) {
	case 1, 2:
		if d.batched {
			return fmt.Errorf("%w: batched diagonal %v requires a batched (3D) rhs, got %v",
				ErrShapeMismatch, d.Size(), shape)
		}
		if shape[0] != n {
			return fmt.Errorf("%w: rhs has %d rows, matrix has %d columns", ErrShapeMismatch, shape[0], n)
		}
	case 3:
		if shape[1] != n {
			return fmt.Errorf("%w: rhs has %d rows, matrix has %d columns", ErrShapeMismatch, shape[1], n)
		}
		if d.batched && shape[0] != d.batchSize() {
			return fmt.Errorf("%w: rhs batch %d, matrix batch %d", ErrShapeMismatch, shape[0], d.batchSize())
		}
	default:
		return fmt.Errorf("%w: rhs must be 1D, 2D, or 3D, got shape %v", ErrShapeMismatch, shape)
	}
	return nil
}

// QuadFormDerivative returns the derivative of leftVecsᵗ · self · rightVecs
// with respect to diag, the single defining parameter: the element-wise
// product of the operands, summed over the trailing dimension when they are
// matrices rather than vectors.
func (d *Diag[T, B]) QuadFormDerivative(leftVecs, rightVecs *tensor.Tensor[T, B]) ([]*tensor.Tensor[T, B], error) {
	if !leftVecs.Shape().Equal(rightVecs.Shape()) {
		return nil, fmt.Errorf("%w: left vecs %v vs right vecs %v",
			ErrShapeMismatch, leftVecs.Shape(), rightVecs.Shape())
	}

	res := leftVecs.Mul(rightVecs)
	if len(res.Shape()) > len(d.diag.Shape()) {
		// Collapse the column dimension introduced by matrix-shaped vecs.
		res = res.SumDim(-1, false)
	}
	if !res.Shape().Equal(d.diag.Shape()) {
		return nil, fmt.Errorf("%w: vecs of shape %v do not match diagonal %v",
			ErrShapeMismatch, leftVecs.Shape(), d.diag.Shape())
	}
	return []*tensor.Tensor[T, B]{res}, nil
}

// Size returns (batch, n, n) when batched, else (n, n).
func (d *Diag[T, B]) Size() tensor.Shape {
	n := d.n()
	if d.batched {
		return tensor.Shape{d.batchSize(), n, n}
	}
	return tensor.Shape{n, n}
}

// Transpose returns the receiver: diagonal matrices are self-adjoint.
func (d *Diag[T, B]) Transpose() Matrix[T, B] {
	return d
}

// GetIndices returns diag[row] where row == col and exact zero elsewhere,
// element-wise over the index tensors. Batched matrices need the explicit
// batch coordinates of BatchGetIndices.
func (d *Diag[T, B]) GetIndices(rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error) {
	if d.batched {
		return nil, fmt.Errorf("%w: batched diagonal requires BatchGetIndices", ErrShapeMismatch)
	}
	if !rows.Shape().Equal(cols.Shape()) {
		return nil, fmt.Errorf("%w: row indices %v vs column indices %v",
			ErrShapeMismatch, rows.Shape(), cols.Shape())
	}

	out := tensor.Zeros[T, B](rows.Shape(), d.diag.Backend())
	dv := d.diag.Data()
	ov := out.Data()
	n := int64(d.n())
	rv, cv := rows.Data(), cols.Data()
	for i := range rv {
		if rv[i] < 0 || rv[i] >= n {
			return nil, fmt.Errorf("%w: row index %d outside [0, %d)", ErrIndexOutOfBounds, rv[i], n)
		}
		if cv[i] < 0 || cv[i] >= n {
			return nil, fmt.Errorf("%w: column index %d outside [0, %d)", ErrIndexOutOfBounds, cv[i], n)
		}
		if rv[i] == cv[i] {
			ov[i] = dv[rv[i]]
		}
	}
	return out, nil
}

// BatchGetIndices is GetIndices over a batched diagonal: the batch tensor
// selects the diagonal before the same coincidence rule applies.
func (d *Diag[T, B]) BatchGetIndices(batch, rows, cols *tensor.Tensor[int64, B]) (*tensor.Tensor[T, B], error) {
	if !d.batched {
		return nil, fmt.Errorf("%w: unbatched diagonal has no batch dimension", ErrShapeMismatch)
	}
	if !batch.Shape().Equal(rows.Shape()) || !rows.Shape().Equal(cols.Shape()) {
		return nil, fmt.Errorf("%w: index tensors must share a shape, got %v, %v, %v",
			ErrShapeMismatch, batch.Shape(), rows.Shape(), cols.Shape())
	}

	out := tensor.Zeros[T, B](rows.Shape(), d.diag.Backend())
	dv := d.diag.Data()
	ov := out.Data()
	n := int64(d.n())
	bsz := int64(d.batchSize())
	bv, rv, cv := batch.Data(), rows.Data(), cols.Data()
	for i := range rv {
		if bv[i] < 0 || bv[i] >= bsz {
			return nil, fmt.Errorf("%w: batch index %d outside [0, %d)", ErrIndexOutOfBounds, bv[i], bsz)
		}
		if rv[i] < 0 || rv[i] >= n {
			return nil, fmt.Errorf("%w: row index %d outside [0, %d)", ErrIndexOutOfBounds, rv[i], n)
		}
		if cv[i] < 0 || cv[i] >= n {
			return nil, fmt.Errorf("%w: column index %d outside [0, %d)", ErrIndexOutOfBounds, cv[i], n)
		}
		if rv[i] == cv[i] {
			ov[i] = dv[bv[i]*n+rv[i]]
		}
	}
	return out, nil
}

// AddDiag returns a new diagonal matrix with added broadcast onto diag.
func (d *Diag[T, B]) AddDiag(added *tensor.Tensor[T, B]) (Matrix[T, B], error) {
	sum, err := d.broadcastAdd(added)
	if err != nil {
		return nil, err
	}
	return &Diag[T, B]{diag: sum, batched: d.batched}, nil
}

// broadcastAdd adds a tensor to diag, requiring the broadcast not to outgrow
// the diagonal's own shape.
func (d *Diag[T, B]) broadcastAdd(added *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	outShape, _, err := tensor.BroadcastShapes(d.diag.Shape(), added.Shape())
	if err != nil || !outShape.Equal(d.diag.Shape()) {
		return nil, fmt.Errorf("%w: cannot broadcast %v onto diagonal %v",
			ErrShapeMismatch, added.Shape(), d.diag.Shape())
	}
	return d.diag.Add(added), nil
}

// Add returns self + other. Two diagonals stay diagonal; any other operand
// yields a lazily composed matrix-plus-diagonal, never a dense matrix.
func (d *Diag[T, B]) Add(other Matrix[T, B]) (Matrix[T, B], error) {
	if od, ok := other.(*Diag[T, B]); ok {
		if !od.diag.Shape().Equal(d.diag.Shape()) {
			return nil, fmt.Errorf("%w: diagonal shapes %v vs %v",
				ErrShapeMismatch, d.diag.Shape(), od.diag.Shape())
		}
		return &Diag[T, B]{diag: d.diag.Add(od.diag), batched: d.batched}, nil
	}
	return NewAddedDiag(other, d)
}

// Diag returns the defining diagonal vector. The returned tensor is the
// matrix's own storage, not a copy: mutating it through Data or Set mutates
// the matrix. Callers that need an independent value must Clone it.
func (d *Diag[T, B]) Diag() (*tensor.Tensor[T, B], error) {
	return d.diag, nil
}

// Evaluate materializes the dense matrix. The unbatched form embeds diag
// directly; the batched form defers to the generic dense path.
// TODO: specialize the batched embedding instead of the identity multiply.
func (d *Diag[T, B]) Evaluate() (*tensor.Tensor[T, B], error) {
	if d.batched {
		return EvaluateDense[T, B](d, d.diag.Backend())
	}

	n := d.n()
	out := tensor.Zeros[T, B](tensor.Shape{n, n}, d.diag.Backend())
	dv := d.diag.Data()
	ov := out.Data()
	for i := 0; i < n; i++ {
		ov[i*n+i] = dv[i]
	}
	return out, nil
}

// SumBatch reduces a batched diagonal by summing groups of consecutive batch
// entries. A zero groupSize sums the entire batch into a single unbatched
// diagonal; a positive groupSize g produces batch/g diagonals and requires g
// to evenly divide the batch.
func (d *Diag[T, B]) SumBatch(groupSize int) (*Diag[T, B], error) {
	if !d.batched {
		return nil, fmt.Errorf("%w: SumBatch requires a batched diagonal", ErrShapeMismatch)
	}
	if groupSize == 0 {
		return &Diag[T, B]{diag: d.diag.SumDim(0, false)}, nil
	}
	if groupSize < 0 {
		return nil, fmt.Errorf("%w: group size %d", ErrIndivisibleBatch, groupSize)
	}

	bsz := d.batchSize()
	if bsz%groupSize != 0 {
		return nil, fmt.Errorf("%w: batch %d, group size %d", ErrIndivisibleBatch, bsz, groupSize)
	}
	grouped := d.diag.Reshape(bsz/groupSize, groupSize, d.n())
	return &Diag[T, B]{diag: grouped.SumDim(1, false), batched: true}, nil
}

// ZeroMeanMVNSamples draws numSamples independent samples from a zero-mean
// multivariate normal whose covariance is this diagonal matrix, via
// sample = sqrt(diag) ⊙ z with z a standard normal draw. The result carries
// a leading sample dimension over diag's shape. Every diagonal entry must be
// non-negative.
func (d *Diag[T, B]) ZeroMeanMVNSamples(numSamples int) (*tensor.Tensor[T, B], error) {
	if numSamples <= 0 {
		return nil, fmt.Errorf("%w: sample count %d is not positive", ErrShapeMismatch, numSamples)
	}
	for _, v := range d.diag.Data() {
		if isNegative(v) {
			return nil, fmt.Errorf("%w: covariance diagonal entry %v", ErrNegativeVariance, v)
		}
	}

	shape := append(tensor.Shape{numSamples}, d.diag.Shape()...)
	base := tensor.Randn[T, B](shape, d.diag.Backend())
	scale := d.diag.Sqrt().Unsqueeze(0).Expand(shape)
	return scale.Mul(base), nil
}

// DType returns the element type of the diagonal.
func (d *Diag[T, B]) DType() tensor.DataType {
	return d.diag.DType()
}

// Device returns the execution target of the diagonal.
func (d *Diag[T, B]) Device() tensor.Device {
	return d.diag.Device()
}

// isNegative reports whether a numeric element is below zero.
func isNegative[T tensor.DType](v T) bool {
	switch x := any(v).(type) {
	case float32:
		return x < 0
	case float64:
		return x < 0
	case int64:
		return x < 0
	default:
		return false
	}
}
