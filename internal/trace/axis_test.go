package trace

import "testing"

func TestInitAxisStateNeverCrossesBelowEpsilon(t *testing.T) {
	axis := initAxisState(1e-5, 0, 0, 1, 0, 0, 1, -10, 10)
	if axis.step != 0 {
		t.Errorf("step = %d, want 0 (axis should never advance)", axis.step)
	}
	if axis.deltaPosition != 0 {
		t.Errorf("deltaPosition = %v, want 0", axis.deltaPosition)
	}
	if axis.position <= 1e6 {
		t.Errorf("position = %v, want a very large sentinel so this axis is never chosen to step", axis.position)
	}
}

func TestInitAxisStatePositiveCosineStepsForward(t *testing.T) {
	axis := initAxisState(1, 0, 0, 2, 0, 0, 1, -10, 10)
	if axis.step != 1 {
		t.Errorf("step = %d, want 1", axis.step)
	}
	if axis.bound != 10 {
		t.Errorf("bound = %v, want maxBound 10", axis.bound)
	}
}

func TestInitAxisStateNegativeCosineStepsBackward(t *testing.T) {
	axis := initAxisState(-1, 0, 0, 2, 0, 0, 1, -10, 10)
	if axis.step != -1 {
		t.Errorf("step = %d, want -1", axis.step)
	}
	if axis.bound != -10 {
		t.Errorf("bound = %v, want minBound -10", axis.bound)
	}
}
