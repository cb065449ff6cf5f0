package trace

import "math"

// directionCosineEpsilon is the magnitude below which an axis is treated as
// "never crosses a cell boundary" during traversal.
const directionCosineEpsilon = 1e-4

// axisState is the per-axis DDA bookkeeping: the signed distance-parameter
// to the next cell crossing, its cell-to-cell increment, the per-step
// cell-index delta, the fractional time of that crossing and its
// increment, and the scene bound that terminates traversal on this axis.
type axisState struct {
	position      float64
	deltaPosition float64
	step          int
	time          float64
	deltaTime     float64
	bound         float64
}

// initAxisState initializes one axis' traversal state from the ray's
// direction cosine on that axis, its origin component, the cell it starts
// in, the cell width, the grid's start coordinate, the start time and
// velocity, and the scene's bounds on that axis.
func initAxisState(cosine, origin float64, cellIndex int, cellWidth, chunkStart float64, startTime uint32, velocity, minBound, maxBound float64) axisState {
	if math.Abs(cosine) <= directionCosineEpsilon {
		return axisState{position: math.MaxFloat64, deltaPosition: 0, step: 0, time: 0, deltaTime: 0, bound: 0}
	}

	cellMin := chunkStart + cellWidth*float64(cellIndex)
	cellMax := cellMin + cellWidth

	if cosine > 0 {
		deltaPosition := 1 / cosine
		position := (cellMax - origin) * deltaPosition
		return axisState{
			position:      position,
			deltaPosition: deltaPosition,
			step:          1,
			time:          float64(startTime) + position/velocity,
			deltaTime:     deltaPosition * cellWidth / velocity,
			bound:         maxBound,
		}
	}

	deltaPosition := -1 / cosine
	position := (origin - cellMin) * deltaPosition
	return axisState{
		position:      position,
		deltaPosition: deltaPosition,
		step:          -1,
		time:          float64(startTime) + position/velocity,
		deltaTime:     deltaPosition * cellWidth / velocity,
		bound:         minBound,
	}
}
