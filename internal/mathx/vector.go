// Package mathx provides the vector arithmetic and real-root solvers the
// ray tracer's geometry depends on: 3-vectors, linear/quadratic/cubic real
// root finding, and barycentric point-in-triangle containment.
package mathx

import (
	"errors"
	"math"
)

// ErrZeroNorm is returned by Normalize when the vector has zero length.
var ErrZeroNorm = errors.New("mathx: cannot normalize a zero vector")

// Vector3 is a double-precision 3-component vector.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length.
func (v Vector3) Normalize() (Vector3, error) {
	n := v.Norm()
	if n == 0 {
		return Vector3{}, ErrZeroNorm
	}
	return v.Scale(1 / n), nil
}

// Axis selects one component of v by index: 0=X, 1=Y, 2=Z.
func (v Vector3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Lerp linearly interpolates between a and b: f=1 returns a, f=0 returns b.
func Lerp(a, b Vector3, f float64) Vector3 {
	return a.Scale(f).Add(b.Scale(1 - f))
}
