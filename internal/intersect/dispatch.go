package intersect

import (
	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// Surface finds the earliest intersection between ray and surface within
// [tEntry, tExit], dispatching between the static and keyframe forms.
func Surface(ray RayState, surface scenemodel.Surface, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	switch s := surface.(type) {
	case scenemodel.InterpolatedSurface:
		return StaticTriangle(ray, s.Coords, tEntry, tExit)

	case *scenemodel.KeyframeSurface:
		for i := 0; i < len(s.Keyframes)-1; i++ {
			first, second := s.Keyframes[i], s.Keyframes[i+1]
			if second.Time < tEntry {
				continue
			}
			if first.Time > tExit {
				return 0, mathx.Vector3{}, false
			}
			pairEntry, pairExit := maxU32(tEntry, first.Time), minU32(tExit, second.Time)
			if t, p, found := MovingTriangle(ray, first, second, pairEntry, pairExit); found {
				return t, p, true
			}
		}
		final := s.Keyframes[len(s.Keyframes)-1]
		return StaticTriangle(ray, final.Coords, final.Time, tExit)
	}
	return 0, mathx.Vector3{}, false
}

// Receiver finds the earliest intersection between ray and receiver within
// [tEntry, tExit], dispatching between the static and keyframe forms.
func Receiver(ray RayState, receiver scenemodel.Receiver, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	switch r := receiver.(type) {
	case scenemodel.InterpolatedReceiver:
		return StaticSphere(ray, r.Position, r.Radius, tEntry, tExit)

	case *scenemodel.KeyframeReceiver:
		for i := 0; i < len(r.Keyframes)-1; i++ {
			first, second := r.Keyframes[i], r.Keyframes[i+1]
			if second.Time < tEntry {
				continue
			}
			if first.Time > tExit {
				return 0, mathx.Vector3{}, false
			}
			pairEntry, pairExit := maxU32(tEntry, first.Time), minU32(tExit, second.Time)
			if t, p, found := MovingSphere(ray, first, second, r.Radius, pairEntry, pairExit); found {
				return t, p, true
			}
		}
		final := r.Keyframes[len(r.Keyframes)-1]
		return StaticSphere(ray, final.Coords, r.Radius, final.Time, tExit)
	}
	return 0, mathx.Vector3{}, false
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
