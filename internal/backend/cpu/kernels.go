package cpu

import (
	"github.com/glaze-ml/glaze/internal/tensor"
)

// numeric constrains the element types the CPU kernels operate on.
type numeric interface {
	~float32 | ~float64 | ~int64
}

// binOp returns the scalar operation for a binary op name.
func binOp[T numeric](name string) func(T, T) T {
	switch name {
	case "add":
		return func(x, y T) T { return x + y }
	case "sub":
		return func(x, y T) T { return x - y }
	case "mul":
		return func(x, y T) T { return x * y }
	case "div":
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op: " + name)
	}
}

// binaryInto applies op element-wise into dst.
// Same-shape operands take the fast path; otherwise source indices are
// mapped through broadcast-adjusted strides.
func binaryInto[T numeric](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op func(T, T) T) {
	if aShape.Equal(bShape) {
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = op(a[sourceIndex(i, outStrides, aStrides)], b[sourceIndex(i, outStrides, bStrides)])
	}
}

// matmulKernel computes C[i,j] = sum_k A[i,k] * B[k,j] for row-major slices.
func matmulKernel[T numeric](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for x := 0; x < k; x++ {
				sum += a[i*k+x] * b[x*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// transposeKernel permutes src's dimensions by axes into dst.
func transposeKernel[T numeric](dst, src []T, srcShape, dstShape tensor.Shape, axes []int) {
	inStrides := srcShape.ComputeStrides()
	outStrides := dstShape.ComputeStrides()
	for outIdx := range dst {
		rem := outIdx
		inIdx := 0
		for i := range axes {
			coord := rem / outStrides[i]
			rem %= outStrides[i]
			inIdx += coord * inStrides[axes[i]]
		}
		dst[outIdx] = src[inIdx]
	}
}

// expandKernel broadcasts src to dst's shape using stride-0 mapping.
func expandKernel[T numeric](dst, src []T, srcShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	srcStrides := broadcastStrides(srcShape, outShape)
	for outIdx := range dst {
		dst[outIdx] = src[sourceIndex(outIdx, outStrides, srcStrides)]
	}
}

// sumDimKernel reduces src along a dimension factored as (outer, dim, inner).
// dst must be zero-initialized.
func sumDimKernel[T numeric](dst, src []T, outer, dimSize, inner int) {
	for o := 0; o < outer; o++ {
		for k := 0; k < dimSize; k++ {
			base := (o*dimSize + k) * inner
			out := o * inner
			for i := 0; i < inner; i++ {
				dst[out+i] += src[base+i]
			}
		}
	}
}
