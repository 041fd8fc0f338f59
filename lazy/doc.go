// Copyright 2025 The Glaze Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lazy provides structured matrices that are never stored densely.
//
// # Overview
//
// A lazy matrix is a symbolic square matrix of shape (batch?, n, n) defined
// by the tensors that parametrize it. Each variant implements the Matrix
// contract with closed-form shortcuts, so generic numerical algorithms
// (conjugate gradients, log-determinant estimation, sampling) work uniformly
// across variants and their compositions without ever materializing a dense
// matrix.
//
// The diagonal variant, Diag, represents a matrix whose only nonzero entries
// lie on the main diagonal; all of its operations run in O(n) (or
// O(batch·n)) instead of O(n²).
//
// # Basic Usage
//
//	import (
//	    "github.com/glaze-ml/glaze/backend/cpu"
//	    "github.com/glaze-ml/glaze/lazy"
//	    "github.com/glaze-ml/glaze/tensor"
//	)
//
//	backend := cpu.New()
//	d, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2}, backend)
//	m, _ := lazy.NewDiag(d)
//
//	v, _ := tensor.FromSlice([]float64{5, 7}, tensor.Shape{2}, backend)
//	p, _ := m.MatMul(v) // [10, 21], no dense matrix involved
package lazy
