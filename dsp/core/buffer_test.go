package core

import "testing"

func TestResize(t *testing.T) {
	buf := make([]float64, 4, 16)

	got := Resize(buf, 8)
	if len(got) != 8 {
		t.Fatalf("expected length 8, got %d", len(got))
	}

	// Capacity was sufficient, so the backing array is reused.
	if &got[0] != &buf[0] {
		t.Error("expected buffer reuse when capacity is sufficient")
	}

	got = Resize(buf, 32)
	if len(got) != 32 {
		t.Fatalf("expected length 32, got %d", len(got))
	}

	if got = Resize(buf, 0); len(got) != 0 {
		t.Fatalf("expected empty slice, got length %d", len(got))
	}
}

func TestZeroResize(t *testing.T) {
	buf := []float64{1, 2, 3, 4}

	got := ZeroResize(buf, 3)
	if len(got) != 3 {
		t.Fatalf("expected length 3, got %d", len(got))
	}

	for i, v := range got {
		if v != 0 {
			t.Errorf("index %d: expected 0, got %v", i, v)
		}
	}

	// Reused storage is cleared, not just re-sliced.
	if &got[0] != &buf[0] {
		t.Error("expected buffer reuse when capacity is sufficient")
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Errorf("index %d: expected 0, got %v", i, v)
		}
	}
}
