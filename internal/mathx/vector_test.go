package mathx

import (
	"errors"
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}

	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vector3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vector3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != (Vector3{-3, 6, -3}) {
		t.Errorf("Cross = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Vector3{3, 4, 0}
	n, err := v.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(n.Norm()-1) > 1e-12 {
		t.Errorf("normalized vector has norm %v, want 1", n.Norm())
	}

	if _, err := (Vector3{}).Normalize(); !errors.Is(err, ErrZeroNorm) {
		t.Errorf("expected ErrZeroNorm, got %v", err)
	}
}

func TestLerp(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{10, 10, 10}
	if got := Lerp(a, b, 1); got != a {
		t.Errorf("Lerp(f=1) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 0); got != b {
		t.Errorf("Lerp(f=0) = %v, want %v", got, b)
	}
	if got := Lerp(a, b, 0.5); got != (Vector3{5, 5, 5}) {
		t.Errorf("Lerp(f=0.5) = %v", got)
	}
}
