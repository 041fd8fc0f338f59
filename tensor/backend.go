// Copyright 2025 The Glaze Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/glaze-ml/glaze/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go
//   - GPU backends can slot in behind the same interface
//
// Example:
//
//	import (
//	    "github.com/glaze-ml/glaze/backend/cpu"
//	    "github.com/glaze-ml/glaze/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend
