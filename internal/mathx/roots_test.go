package mathx

import (
	"math"
	"sort"
	"testing"
)

func approxContains(t *testing.T, got []float64, want float64, eps float64) {
	t.Helper()
	for _, g := range got {
		if math.Abs(g-want) <= eps {
			return
		}
	}
	t.Errorf("expected a root near %v in %v", want, got)
}

func TestSolveLinear(t *testing.T) {
	roots := SolveLinear(2, -4)
	approxContains(t, roots, 2, 1e-9)

	if roots := SolveLinear(0, 5); roots != nil {
		t.Errorf("expected nil for zero leading coefficient, got %v", roots)
	}
}

func TestSolveQuadraticFallsBackToLinear(t *testing.T) {
	roots := SolveQuadratic(0, 2, -4)
	approxContains(t, roots, 2, 1e-9)
}

func TestSolveQuadraticConcreteValues(t *testing.T) {
	roots := SolveQuadratic(-0.3, 2.4, -2.2)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	sort.Float64s(roots)
	approxContains(t, roots, 1.06, 0.01)
	approxContains(t, roots, 6.94, 0.01)
}

func TestSolveQuadraticNoRealRoots(t *testing.T) {
	if roots := SolveQuadratic(1, 0, 1); len(roots) != 0 {
		t.Errorf("expected no real roots, got %v", roots)
	}
}

func TestSolveCubicFallsBackToQuadratic(t *testing.T) {
	roots := SolveCubic(0, -0.3, 2.4, -2.2)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
}

func TestSolveCubicConcreteValues(t *testing.T) {
	roots := SolveCubic(2, 1, -3, -0.4)
	if len(roots) != 3 {
		t.Fatalf("expected 3 real roots, got %v", roots)
	}
	approxContains(t, roots, 1.07, 0.01)
	approxContains(t, roots, -1.44, 0.01)
	approxContains(t, roots, -0.13, 0.01)
}

func TestSolveCubicSingleRealRoot(t *testing.T) {
	// t^3 + t + 1 = 0 has exactly one real root, near -0.6823.
	roots := SolveCubic(1, 0, 1, 1)
	if len(roots) != 1 {
		t.Fatalf("expected 1 real root, got %v", roots)
	}
	approxContains(t, roots, -0.6823, 1e-3)
}

func TestSolveCubicTripleRoot(t *testing.T) {
	// (t-2)^3 = t^3 - 6t^2 + 12t - 8
	roots := SolveCubic(1, -6, 12, -8)
	approxContains(t, roots, 2, 1e-6)
}
