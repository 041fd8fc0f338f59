package cpu

import (
	"testing"

	"github.com/glaze-ml/glaze/internal/tensor"
)

func TestMatMul(t *testing.T) {
	backend := New()

	a := rawF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawF64(t, []float64{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := backend.MatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("MatMul shape = %v, want [2 2]", out.Shape())
	}
	assertF64(t, out, []float64{58, 64, 139, 154}, "MatMul values")
}

func TestMatMulVector(t *testing.T) {
	backend := New()

	a := rawF64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	v := rawF64(t, []float64{5, 6}, tensor.Shape{2, 1})

	out := backend.MatMul(a, v)
	assertF64(t, out, []float64{17, 39}, "matrix-vector product")
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	backend := New()
	a := rawF64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawF64(t, []float64{1, 2, 3}, tensor.Shape{3, 1})

	defer func() {
		if recover() == nil {
			t.Error("inner-dimension mismatch should panic")
		}
	}()
	backend.MatMul(a, b)
}

func TestBatchMatMul(t *testing.T) {
	backend := New()

	a := rawF64(t, []float64{
		1, 2, 3, 4, // Batch 0
		5, 6, 7, 8, // Batch 1
	}, tensor.Shape{2, 2, 2})
	b := rawF64(t, []float64{
		1, 0, 0, 1, // Identity
		2, 0, 0, 2, // Scaled identity
	}, tensor.Shape{2, 2, 2})

	out := backend.BatchMatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("BatchMatMul shape = %v, want [2 2 2]", out.Shape())
	}
	assertF64(t, out, []float64{1, 2, 3, 4, 10, 12, 14, 16}, "per-batch products")
}

func TestBatchMatMulBatchMismatchPanics(t *testing.T) {
	backend := New()
	a := rawF64(t, make([]float64, 8), tensor.Shape{2, 2, 2})
	b := rawF64(t, make([]float64, 12), tensor.Shape{3, 2, 2})

	defer func() {
		if recover() == nil {
			t.Error("batch-size mismatch should panic")
		}
	}()
	backend.BatchMatMul(a, b)
}
