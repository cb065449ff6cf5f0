// Package scenemodel defines the scene entities (emitter, receiver,
// surfaces) that the ray tracer traces against, either as a keyframe
// sequence or as a single time-stamped snapshot, plus interpolation and
// bounding-box computation over them.
//
// Keyframes vs. Interpolated is modeled as a tagged sum the way the source
// does: a small closed interface with an unexported marker method rather
// than subtype polymorphism, since the solver paths differ in arity of
// inputs between the two forms.
package scenemodel

import (
	"errors"
	"fmt"

	"raytraceverb/internal/mathx"
)

// ErrEmptyKeyframes is returned when a keyframe sequence has no entries.
var ErrEmptyKeyframes = errors.New("scenemodel: keyframe sequence must be non-empty")

// ErrNonIncreasingKeyframeTimes is returned when keyframe times are not
// strictly increasing.
var ErrNonIncreasingKeyframeTimes = errors.New("scenemodel: keyframe times must be strictly increasing")

// ErrNonPositiveRadius is returned when a receiver radius is not strictly positive.
var ErrNonPositiveRadius = errors.New("scenemodel: receiver radius must be strictly positive")

// CoordinateKeyframe is a timestamped position.
type CoordinateKeyframe struct {
	Time   uint32
	Coords mathx.Vector3
}

// SurfaceKeyframe is a timestamped triangle (three vertex positions).
type SurfaceKeyframe struct {
	Time   uint32
	Coords [3]mathx.Vector3
}

func checkCoordinateKeyframes(keyframes []CoordinateKeyframe) error {
	if len(keyframes) == 0 {
		return ErrEmptyKeyframes
	}
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Time <= keyframes[i-1].Time {
			return fmt.Errorf("%w: keyframe %d has time %d, keyframe %d has time %d",
				ErrNonIncreasingKeyframeTimes, i-1, keyframes[i-1].Time, i, keyframes[i].Time)
		}
	}
	return nil
}

func checkSurfaceKeyframes(keyframes []SurfaceKeyframe) error {
	if len(keyframes) == 0 {
		return ErrEmptyKeyframes
	}
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Time <= keyframes[i-1].Time {
			return fmt.Errorf("%w: keyframe %d has time %d, keyframe %d has time %d",
				ErrNonIncreasingKeyframeTimes, i-1, keyframes[i-1].Time, i, keyframes[i].Time)
		}
	}
	return nil
}

// Emitter is either a keyframe sequence or a single interpolated snapshot.
type Emitter interface {
	AtTime(t uint32) InterpolatedEmitter
	emitterMarker()
}

// KeyframeEmitter is an emitter whose position is defined by keyframes.
type KeyframeEmitter struct {
	Keyframes []CoordinateKeyframe
	Emission  EmissionType
}

// NewKeyframeEmitter validates and constructs a KeyframeEmitter.
func NewKeyframeEmitter(keyframes []CoordinateKeyframe, emission EmissionType) (*KeyframeEmitter, error) {
	if err := checkCoordinateKeyframes(keyframes); err != nil {
		return nil, err
	}
	return &KeyframeEmitter{Keyframes: keyframes, Emission: emission}, nil
}

func (e *KeyframeEmitter) emitterMarker() {}

// AtTime interpolates the emitter's position at t.
func (e *KeyframeEmitter) AtTime(t uint32) InterpolatedEmitter {
	return InterpolatedEmitter{
		Position: InterpolateCoordinateKeyframes(e.Keyframes, t),
		Time:     t,
		Emission: e.Emission,
	}
}

// InterpolatedEmitter is an emitter already pinned to a single time.
type InterpolatedEmitter struct {
	Position mathx.Vector3
	Time     uint32
	Emission EmissionType
}

func (InterpolatedEmitter) emitterMarker() {}

// AtTime on an already-Interpolated emitter returns a copy of itself,
// ignoring the requested time -- this is the round-trip idempotence law.
func (e InterpolatedEmitter) AtTime(uint32) InterpolatedEmitter {
	return e
}

// Receiver is either a keyframe sequence or a single interpolated snapshot.
type Receiver interface {
	AtTime(t uint32) InterpolatedReceiver
	receiverMarker()
}

// KeyframeReceiver is a receiver whose position is defined by keyframes.
type KeyframeReceiver struct {
	Keyframes []CoordinateKeyframe
	Radius    float64
}

// NewKeyframeReceiver validates and constructs a KeyframeReceiver.
func NewKeyframeReceiver(keyframes []CoordinateKeyframe, radius float64) (*KeyframeReceiver, error) {
	if err := checkCoordinateKeyframes(keyframes); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, ErrNonPositiveRadius
	}
	return &KeyframeReceiver{Keyframes: keyframes, Radius: radius}, nil
}

func (r *KeyframeReceiver) receiverMarker() {}

// AtTime interpolates the receiver's position at t.
func (r *KeyframeReceiver) AtTime(t uint32) InterpolatedReceiver {
	return InterpolatedReceiver{
		Position: InterpolateCoordinateKeyframes(r.Keyframes, t),
		Radius:   r.Radius,
		Time:     t,
	}
}

// InterpolatedReceiver is a receiver already pinned to a single time.
type InterpolatedReceiver struct {
	Position mathx.Vector3
	Radius   float64
	Time     uint32
}

// NewInterpolatedReceiver validates and constructs an InterpolatedReceiver.
func NewInterpolatedReceiver(position mathx.Vector3, radius float64, t uint32) (InterpolatedReceiver, error) {
	if radius <= 0 {
		return InterpolatedReceiver{}, ErrNonPositiveRadius
	}
	return InterpolatedReceiver{Position: position, Radius: radius, Time: t}, nil
}

func (InterpolatedReceiver) receiverMarker() {}

// AtTime on an already-Interpolated receiver returns a copy of itself.
func (r InterpolatedReceiver) AtTime(uint32) InterpolatedReceiver {
	return r
}

// Surface is either a keyframe sequence of triangles or a single
// interpolated snapshot triangle.
type Surface interface {
	AtTime(t uint32) InterpolatedSurface
	surfaceMarker()
}

// KeyframeSurface is a surface whose vertices are defined by keyframes.
type KeyframeSurface struct {
	Keyframes []SurfaceKeyframe
	Material  Material
}

// NewKeyframeSurface validates and constructs a KeyframeSurface.
func NewKeyframeSurface(keyframes []SurfaceKeyframe, material Material) (*KeyframeSurface, error) {
	if err := checkSurfaceKeyframes(keyframes); err != nil {
		return nil, err
	}
	return &KeyframeSurface{Keyframes: keyframes, Material: material}, nil
}

func (s *KeyframeSurface) surfaceMarker() {}

// AtTime interpolates the surface's vertices at t.
func (s *KeyframeSurface) AtTime(t uint32) InterpolatedSurface {
	return InterpolatedSurface{
		Coords:   InterpolateSurfaceKeyframes(s.Keyframes, t),
		Time:     t,
		Material: s.Material,
	}
}

// InterpolatedSurface is a surface already pinned to a single time: a
// concrete triangle.
type InterpolatedSurface struct {
	Coords   [3]mathx.Vector3
	Time     uint32
	Material Material
}

func (InterpolatedSurface) surfaceMarker() {}

// AtTime on an already-Interpolated surface returns a copy of itself.
func (s InterpolatedSurface) AtTime(uint32) InterpolatedSurface {
	return s
}

// Normal returns the unit normal of the surface's plane, the normalized
// cross product of its first two edges. Its sign follows the vertex
// winding, so it does not necessarily face outward. It fails on degenerate
// triangles.
func (s InterpolatedSurface) Normal() (mathx.Vector3, error) {
	edge1 := s.Coords[1].Sub(s.Coords[0])
	edge2 := s.Coords[2].Sub(s.Coords[0])
	return edge1.Cross(edge2).Normalize()
}

// Scene is the full set of entities the ray tracer traces against.
type Scene struct {
	Surfaces     []Surface
	Receiver     Receiver
	Emitter      Emitter
	LoopDuration *uint32
}
