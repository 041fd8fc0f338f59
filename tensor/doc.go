// Copyright 2025 The Glaze Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensor substrate for the Glaze lazy
// linear-algebra library.
//
// # Overview
//
// Tensors are the dense building blocks that lazy matrices are parametrized
// by. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Batched (3D) and unbatched (2D) matrix operations
//   - Device abstraction through the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/glaze-ml/glaze/backend/cpu"
//	    "github.com/glaze-ml/glaze/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor
