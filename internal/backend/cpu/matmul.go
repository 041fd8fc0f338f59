package cpu

import (
	"fmt"

	"github.com/glaze-ml/glaze/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
// Naive O(n³) implementation; the lazy layer exists precisely so this path
// is rarely the hot one.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	case tensor.Int64:
		matmulKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// BatchMatMul performs batched matrix multiplication for 3D tensors:
// [B, M, K] @ [B, K, N] -> [B, M, N].
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 3 || len(bShape) != 3 {
		panic(fmt.Sprintf("batchmatmul: only 3D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	batch, m, k := aShape[0], aShape[1], aShape[2]
	if bShape[0] != batch || bShape[1] != k {
		panic(fmt.Sprintf("batchmatmul: shape mismatch %v @ %v", aShape, bShape))
	}
	n := bShape[2]

	result, err := tensor.NewRaw(tensor.Shape{batch, m, n}, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("batchmatmul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		batchMatmul(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), batch, m, k, n)
	case tensor.Float64:
		batchMatmul(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), batch, m, k, n)
	case tensor.Int64:
		batchMatmul(result.AsInt64(), a.AsInt64(), b.AsInt64(), batch, m, k, n)
	default:
		panic(fmt.Sprintf("batchmatmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// batchMatmul runs the 2D kernel once per batch entry.
func batchMatmul[T numeric](c, a, b []T, batch, m, k, n int) {
	for i := 0; i < batch; i++ {
		matmulKernel(c[i*m*n:(i+1)*m*n], a[i*m*k:(i+1)*m*k], b[i*k*n:(i+1)*k*n], m, k, n)
	}
}
