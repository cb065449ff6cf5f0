package trace

import (
	"math"

	"raytraceverb/internal/chunkindex"
	"raytraceverb/internal/intersect"
	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// traversalHit is the outcome of checking one cell for an intersection:
// either nothing, a surface hit (with its index), or a receiver hit.
type traversalHit struct {
	found      bool
	isReceiver bool
	index      int
	time       uint32
	point      mathx.Vector3
}

// traverse walks the grid from ray's current cell using Cleary-Wyvill DDA
// stepping, returning the first intersection encountered or ok=false if the
// ray exits the scene bounds with energy remaining.
func traverse(ray Ray, scene scenemodel.Scene, chunks *chunkindex.Chunks, bounds scenemodel.Bounds) (hit traversalHit, ok bool) {
	ix, iy, iz := chunks.CoordToCell(ray.Origin)
	lastTime := ray.Time

	ax := initAxisState(ray.Direction.X, ray.Origin.X, ix, chunks.CellSize.X, chunks.ChunkStarts.X, ray.Time, ray.Velocity, bounds.Min.X, bounds.Max.X)
	ay := initAxisState(ray.Direction.Y, ray.Origin.Y, iy, chunks.CellSize.Y, chunks.ChunkStarts.Y, ray.Time, ray.Velocity, bounds.Min.Y, bounds.Max.Y)
	az := initAxisState(ray.Direction.Z, ray.Origin.Z, iz, chunks.CellSize.Z, chunks.ChunkStarts.Z, ray.Time, ray.Velocity, bounds.Min.Z, bounds.Max.Z)

	rs := intersect.RayState{Origin: ray.Origin, Direction: ray.Direction, Velocity: ray.Velocity, Time: ray.Time}

	for {
		switch {
		case ax.position <= ay.position && ax.position <= az.position:
			key := chunkindex.Key(ix, iy, iz)
			h := intersectionCheckInChunk(rs, scene, chunks, key, lastTime, uint32(math.Ceil(ax.time)))
			if h.found {
				return h, true
			}
			if ax.position >= ax.bound {
				return traversalHit{}, false
			}
			lastTime = uint32(math.Trunc(ax.time))
			ix += ax.step
			ax.position += ax.deltaPosition
			ax.time += ax.deltaTime

		case ay.position <= ax.position && ay.position <= az.position:
			key := chunkindex.Key(ix, iy, iz)
			h := intersectionCheckInChunk(rs, scene, chunks, key, lastTime, uint32(math.Ceil(ay.time)))
			if h.found {
				return h, true
			}
			if ay.position >= ay.bound {
				return traversalHit{}, false
			}
			lastTime = uint32(math.Trunc(ay.time))
			iy += ay.step
			ay.position += ay.deltaPosition
			ay.time += ay.deltaTime

		default:
			key := chunkindex.Key(ix, iy, iz)
			h := intersectionCheckInChunk(rs, scene, chunks, key, lastTime, uint32(math.Ceil(az.time)))
			if h.found {
				return h, true
			}
			if az.position >= az.bound {
				return traversalHit{}, false
			}
			lastTime = uint32(math.Trunc(az.time))
			iz += az.step
			az.position += az.deltaPosition
			az.time += az.deltaTime
		}
	}
}

// intersectionCheckInChunk checks a single cell for receiver and surface
// intersections within [timeEntry, timeExit]. A receiver hit always wins
// over a surface hit in the same cell, regardless of relative time; among
// multiple surface hits, the latest t_hit wins.
func intersectionCheckInChunk(ray intersect.RayState, scene scenemodel.Scene, chunks *chunkindex.Chunks, key uint32, timeEntry, timeExit uint32) traversalHit {
	if !chunks.IsSet(key) {
		return traversalHit{}
	}

	receivers, surfaces := chunks.ObjectsAt(key, timeEntry, timeExit)

	if len(receivers) > 0 {
		if t, p, ok := intersect.Receiver(ray, scene.Receiver, timeEntry, timeExit); ok {
			return traversalHit{found: true, isReceiver: true, time: t, point: p}
		}
	}

	var best traversalHit
	for _, entry := range surfaces {
		t, p, ok := intersect.Surface(ray, scene.Surfaces[entry.Index], timeEntry, timeExit)
		if !ok {
			continue
		}
		if !best.found || t > best.time {
			best = traversalHit{found: true, index: entry.Index, time: t, point: p}
		}
	}
	return best
}
