// Copyright 2025 The Glaze Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32, Float64, and Int64 support
//   - Batched matrix multiplication
//   - NumPy-compatible broadcasting
//
// # Usage
//
//	import (
//	    "github.com/glaze-ml/glaze/backend/cpu"
//	    "github.com/glaze-ml/glaze/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
package cpu
