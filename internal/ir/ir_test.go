package ir

import (
	"testing"

	"raytraceverb/internal/trace"
)

func TestToImpulseResponseEmpty(t *testing.T) {
	got := ToImpulseResponse(nil, 10000)
	want := []float64{0}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("ToImpulseResponse(nil) = %v, want %v", got, want)
	}
}

func TestToImpulseResponseSingleArrival(t *testing.T) {
	arrivals := []trace.Arrival{{Energy: 1.0, Time: 90}}
	got := ToImpulseResponse(arrivals, 10000)
	if len(got) != 91 {
		t.Fatalf("len = %d, want 91", len(got))
	}
	want := 0.0001
	if diff := got[90] - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("got[90] = %v, want %v", got[90], want)
	}
}

func TestToImpulseResponseDuplicateArrivalsSumAtSameTime(t *testing.T) {
	arrivals := []trace.Arrival{{Energy: 1.0, Time: 90}, {Energy: 0.5, Time: 90}}
	got := ToImpulseResponse(arrivals, 10000)
	want := 0.00015
	if diff := got[90] - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("got[90] = %v, want %v", got[90], want)
	}
}

func TestAccumulateAddsScaledImpulseResponseAtOffset(t *testing.T) {
	output := make([]float64, 5)
	Accumulate(output, []float64{1, 2, 3}, 2.0, 1, 10.0)
	want := []float64{0, 20, 40, 60, 0}
	for i := range want {
		if output[i] != want[i] {
			t.Errorf("output[%d] = %v, want %v", i, output[i], want[i])
		}
	}
}

func TestOutputLength(t *testing.T) {
	if got := OutputLength(1000, 250); got != 1250 {
		t.Errorf("OutputLength = %d, want 1250", got)
	}
}
