package cpu

import (
	"testing"

	"github.com/glaze-ml/glaze/internal/tensor"
)

// Test helpers

func rawF64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(r.AsFloat64(), data)
	return r
}

func rawI64(t *testing.T, data []int64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(r.AsInt64(), data)
	return r
}

func assertF64(t *testing.T, r *tensor.RawTensor, expected []float64, msg string) {
	t.Helper()
	got := r.AsFloat64()
	if len(got) != len(expected) {
		t.Fatalf("%s: got %v, want %v", msg, got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("%s: got %v, want %v", msg, got, expected)
		}
	}
}

func TestBackendIdentity(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}

func TestElementwiseSameShape(t *testing.T) {
	backend := New()
	a := rawF64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawF64(t, []float64{10, 20, 30, 40}, tensor.Shape{2, 2})

	assertF64(t, backend.Add(a, b), []float64{11, 22, 33, 44}, "Add")
	assertF64(t, backend.Sub(b, a), []float64{9, 18, 27, 36}, "Sub")
	assertF64(t, backend.Mul(a, b), []float64{10, 40, 90, 160}, "Mul")
	assertF64(t, backend.Div(b, a), []float64{10, 10, 10, 10}, "Div")
}

func TestElementwiseBroadcast(t *testing.T) {
	backend := New()

	// Column (2, 1) against full matrix (2, 3).
	col := rawF64(t, []float64{2, 3}, tensor.Shape{2, 1})
	m := rawF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := backend.Mul(col, m)
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast shape = %v, want [2 3]", out.Shape())
	}
	assertF64(t, out, []float64{2, 4, 6, 12, 15, 18}, "col broadcast")

	// Row (3,) against matrix (2, 3).
	row := rawF64(t, []float64{10, 20, 30}, tensor.Shape{3})
	assertF64(t, backend.Add(m, row), []float64{11, 22, 33, 14, 25, 36}, "row broadcast")
}

func TestElementwiseInt64(t *testing.T) {
	backend := New()
	a := rawI64(t, []int64{1, 2, 3}, tensor.Shape{3})
	b := rawI64(t, []int64{4, 5, 6}, tensor.Shape{3})

	got := backend.Add(a, b).AsInt64()
	expected := []int64{5, 7, 9}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("int64 Add = %v, want %v", got, expected)
		}
	}
}

func TestElementwiseDTypeMismatchPanics(t *testing.T) {
	backend := New()
	a := rawF64(t, []float64{1}, tensor.Shape{1})
	b := rawI64(t, []int64{1}, tensor.Shape{1})

	defer func() {
		if recover() == nil {
			t.Error("dtype mismatch should panic")
		}
	}()
	backend.Add(a, b)
}

func TestSqrt(t *testing.T) {
	backend := New()
	a := rawF64(t, []float64{4, 9, 16}, tensor.Shape{3})
	assertF64(t, backend.Sqrt(a), []float64{2, 3, 4}, "Sqrt")
}

func TestSqrtIntPanics(t *testing.T) {
	backend := New()
	a := rawI64(t, []int64{4}, tensor.Shape{1})
	defer func() {
		if recover() == nil {
			t.Error("Sqrt on int64 should panic")
		}
	}()
	backend.Sqrt(a)
}
