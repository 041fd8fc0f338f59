package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively, lifting every numeric dtype through
// float64, for correctness verification only.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// MatMul performs naive 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("mock matmul: need 2D tensors, got %v @ %v", aShape, bShape))
	}
	rows, k, cols := aShape[0], aShape[1], bShape[1]
	if bShape[0] != k {
		panic(fmt.Sprintf("mock matmul: shape mismatch %v @ %v", aShape, bShape))
	}

	av, bv := m.lift(a), m.lift(b)
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for x := 0; x < k; x++ {
				sum += av[i*k+x] * bv[x*cols+j]
			}
			out[i*cols+j] = sum
		}
	}
	return m.store(out, Shape{rows, cols}, a.DType())
}

// BatchMatMul performs naive batched matrix multiplication.
func (m *MockBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 3 || len(bShape) != 3 || aShape[0] != bShape[0] || aShape[2] != bShape[1] {
		panic(fmt.Sprintf("mock batchmatmul: shape mismatch %v @ %v", aShape, bShape))
	}
	batch, rows, k, cols := aShape[0], aShape[1], aShape[2], bShape[2]

	av, bv := m.lift(a), m.lift(b)
	out := make([]float64, batch*rows*cols)
	for n := 0; n < batch; n++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				sum := 0.0
				for x := 0; x < k; x++ {
					sum += av[(n*rows+i)*k+x] * bv[(n*k+x)*cols+j]
				}
				out[(n*rows+i)*cols+j] = sum
			}
		}
	}
	return m.store(out, Shape{batch, rows, cols}, a.DType())
}

// Reshape copies the tensor into a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	result, err := t.Clone().WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("mock reshape: %v", err))
	}
	return result
}

// Transpose permutes the tensor's dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("mock transpose: axes %v for %dD tensor", axes, ndim))
	}

	newShape := make(Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	src := m.lift(t)
	out := make([]float64, len(src))
	inStrides := shape.ComputeStrides()
	outStrides := newShape.ComputeStrides()
	for outIdx := range out {
		rem := outIdx
		inIdx := 0
		for i := 0; i < ndim; i++ {
			coord := rem / outStrides[i]
			rem %= outStrides[i]
			inIdx += coord * inStrides[axes[i]]
		}
		out[outIdx] = src[inIdx]
	}
	return m.store(out, newShape, t.DType())
}

// Expand broadcasts the tensor to a new shape.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	src := m.lift(x)
	out := make([]float64, shape.NumElements())
	outStrides := shape.ComputeStrides()
	inStrides := broadcastStrides(x.Shape(), shape)
	for outIdx := range out {
		out[outIdx] = src[mapFlatIndex(outIdx, outStrides, inStrides)]
	}
	return m.store(out, shape, x.DType())
}

// Unsqueeze adds a dimension of size 1 at the given position.
func (m *MockBackend) Unsqueeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("mock unsqueeze: dim %d for %dD tensor", dim, ndim))
	}
	newShape := make(Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return m.Reshape(x, newShape)
}

// Sqrt computes the element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("mock sqrt: unsupported dtype %s", x.DType()))
	}
	src := m.lift(x)
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = math.Sqrt(v)
	}
	return m.store(out, x.Shape(), x.DType())
}

// SumDim sums elements along the given dimension.
func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("mock sumdim: dim %d for %dD tensor", dim, ndim))
	}

	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	dimSize := shape[dim]
	inner := 1
	for i := dim + 1; i < ndim; i++ {
		inner *= shape[i]
	}

	src := m.lift(x)
	out := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for k := 0; k < dimSize; k++ {
			for i := 0; i < inner; i++ {
				out[o*inner+i] += src[(o*dimSize+k)*inner+i]
			}
		}
	}

	var outShape Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}
	return m.store(out, outShape, x.DType())
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	av, bv := m.lift(a), m.lift(b)
	out := make([]float64, outShape.NumElements())
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	for outIdx := range out {
		x := av[mapFlatIndex(outIdx, outStrides, aStrides)]
		y := bv[mapFlatIndex(outIdx, outStrides, bStrides)]
		out[outIdx] = op(x, y)
	}
	return m.store(out, outShape, a.DType())
}

// lift converts any numeric tensor to []float64.
func (m *MockBackend) lift(r *RawTensor) []float64 {
	switch r.DType() {
	case Float32:
		src := r.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	case Float64:
		return r.AsFloat64()
	case Int64:
		src := r.AsInt64()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", r.DType()))
	}
}

// store writes float64 values into a fresh tensor of the requested dtype.
func (m *MockBackend) store(vals []float64, shape Shape, dtype DataType) *RawTensor {
	result, err := NewRaw(shape, dtype, m.Device())
	if err != nil {
		panic(err)
	}
	switch dtype {
	case Float32:
		dst := result.AsFloat32()
		for i, v := range vals {
			dst[i] = float32(v)
		}
	case Float64:
		copy(result.AsFloat64(), vals)
	case Int64:
		dst := result.AsInt64()
		for i, v := range vals {
			dst[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", dtype))
	}
	return result
}

// broadcastStrides computes strides for broadcasting inShape to outShape.
// Dimensions of size 1 (or padded on the left) get stride 0.
func broadcastStrides(inShape, outShape Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// mapFlatIndex maps a flat output index to a flat source index using
// broadcast-adjusted source strides.
func mapFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}
