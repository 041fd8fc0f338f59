// Copyright 2025 The Glaze Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lazy

import (
	"github.com/glaze-ml/glaze/internal/lazy"
	"github.com/glaze-ml/glaze/internal/tensor"
)

// Matrix is the contract every structured matrix variant satisfies.
// Generic algorithms should depend on this interface only.
type Matrix[T tensor.DType, B tensor.Backend] = lazy.Matrix[T, B]

// Diag is a lazy diagonal matrix, unbatched (n, n) or batched
// (batch, n, n), parametrized by its diagonal vector(s).
type Diag[T tensor.DType, B tensor.Backend] = lazy.Diag[T, B]

// AddedDiag is the lazy sum of a structured matrix and a diagonal matrix.
type AddedDiag[T tensor.DType, B tensor.Backend] = lazy.AddedDiag[T, B]

// Failure kinds. Use errors.Is against these sentinels.
var (
	ErrShapeMismatch    = lazy.ErrShapeMismatch
	ErrIndexOutOfBounds = lazy.ErrIndexOutOfBounds
	ErrIndivisibleBatch = lazy.ErrIndivisibleBatch
	ErrNegativeVariance = lazy.ErrNegativeVariance
	ErrUnsupported      = lazy.ErrUnsupported
)

// NewDiag creates a lazy diagonal matrix from a diagonal vector (n,) or a
// batch of diagonal vectors (batch, n).
//
// Example:
//
//	d, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2}, backend)
//	m, err := lazy.NewDiag(d)
func NewDiag[T tensor.DType, B tensor.Backend](diag *tensor.Tensor[T, B]) (*Diag[T, B], error) {
	return lazy.NewDiag(diag)
}

// NewAddedDiag lazily composes term + diag without densifying either.
func NewAddedDiag[T tensor.DType, B tensor.Backend](term Matrix[T, B], diag *Diag[T, B]) (*AddedDiag[T, B], error) {
	return lazy.NewAddedDiag(term, diag)
}

// EvaluateDense is the generic dense-evaluation path shared by all variants:
// multiplication by an identity, expanded across the batch when present.
func EvaluateDense[T tensor.DType, B tensor.Backend](m Matrix[T, B], b B) (*tensor.Tensor[T, B], error) {
	return lazy.EvaluateDense(m, b)
}
