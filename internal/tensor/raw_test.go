package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if r.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", r.NumElements())
	}
	if r.ByteSize() != 48 {
		t.Errorf("ByteSize() = %d, want 48", r.ByteSize())
	}
	if r.DType() != Float64 {
		t.Errorf("DType() = %v, want Float64", r.DType())
	}
	if r.Device() != CPU {
		t.Errorf("Device() = %v, want CPU", r.Device())
	}

	for _, v := range r.AsFloat64() {
		if v != 0 {
			t.Fatal("NewRaw should zero-initialize the buffer")
		}
	}

	if _, err := NewRaw(Shape{2, -1}, Float64, CPU); err == nil {
		t.Error("NewRaw should reject invalid shapes")
	}
}

func TestRawTypedViews(t *testing.T) {
	r, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	view := r.AsFloat32()
	view[2] = 1.5
	if got := r.AsFloat32()[2]; got != 1.5 {
		t.Errorf("typed view should alias storage, got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("AsInt64 on a float32 tensor should panic")
		}
	}()
	r.AsInt64()
}

func TestRawClone(t *testing.T) {
	r, err := NewRaw(Shape{3}, Int64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	r.AsInt64()[0] = 7

	c := r.Clone()
	c.AsInt64()[0] = 99

	if got := r.AsInt64()[0]; got != 7 {
		t.Errorf("Clone must deep-copy: original mutated to %v", got)
	}
}

func TestRawWithShape(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	r.AsFloat64()[4] = 2.5

	v, err := r.WithShape(Shape{3, 2})
	if err != nil {
		t.Fatalf("WithShape failed: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, v.Shape(), "WithShape shape")
	if got := v.AsFloat64()[4]; got != 2.5 {
		t.Errorf("WithShape should share the buffer, got %v", got)
	}

	if _, err := r.WithShape(Shape{4, 2}); err == nil {
		t.Error("WithShape should reject element-count mismatch")
	}
}

func TestDeviceString(t *testing.T) {
	if CPU.String() != "CPU" {
		t.Errorf("CPU.String() = %q", CPU.String())
	}
	if WebGPU.String() != "WebGPU" {
		t.Errorf("WebGPU.String() = %q", WebGPU.String())
	}
}
