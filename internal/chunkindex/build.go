package chunkindex

import (
	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// cellBox is a closed range of cell indices on each axis, used to compare
// whether two bounding boxes occupy the same set of cells.
type cellBox struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int
}

// Build constructs the chunk index for scene at the given grid resolution:
// compute bounds, size cells, insert every surface (static box or
// binary-refined dynamic intervals) and the receiver symmetrically.
func Build(scene scenemodel.Scene, gridSize int) (*Chunks, scenemodel.Bounds) {
	bounds := scenemodel.MaximumBounds(scene)

	sizeX := cellSizeOf(bounds.Max.X-bounds.Min.X, gridSize)
	sizeY := cellSizeOf(bounds.Max.Y-bounds.Min.Y, gridSize)
	sizeZ := cellSizeOf(bounds.Max.Z-bounds.Min.Z, gridSize)

	numCells := gridSize * gridSize * gridSize
	chunks := &Chunks{
		GridSize:    gridSize,
		ChunkStarts: bounds.Min,
		CellSize:    mathx.Vector3{X: sizeX, Y: sizeY, Z: sizeZ},
		setChunks:   make([]uint64, (numCells+63)/64),
		cells:       make(map[uint32]*cell),
	}

	for idx, surface := range scene.Surfaces {
		addSurface(chunks, idx, surface)
	}
	addReceiver(chunks, scene.Receiver)

	return chunks, bounds
}

func cellSizeOf(span float64, gridSize int) float64 {
	size := span / float64(gridSize)
	if size < 0.1 {
		return 0.1
	}
	return size
}

func (c *Chunks) worldBoxToCellBox(min, max mathx.Vector3) cellBox {
	minX, minY, minZ := c.CoordToCell(min)
	maxX, maxY, maxZ := c.CoordToCell(max)
	return cellBox{MinX: minX, MinY: minY, MinZ: minZ, MaxX: maxX, MaxY: maxY, MaxZ: maxZ}
}

func (c *Chunks) forEachCellInBox(box cellBox, fn func(ix, iy, iz int)) {
	for ix := box.MinX; ix <= box.MaxX; ix++ {
		for iy := box.MinY; iy <= box.MaxY; iy++ {
			for iz := box.MinZ; iz <= box.MaxZ; iz++ {
				if c.InRange(ix, iy, iz) {
					fn(ix, iy, iz)
				}
			}
		}
	}
}

func triangleWorldBox(tri [3]mathx.Vector3) (min, max mathx.Vector3) {
	min, max = tri[0], tri[0]
	for _, v := range tri[1:] {
		min = componentMin(min, v)
		max = componentMax(max, v)
	}
	return min, max
}

func sphereWorldBox(center mathx.Vector3, radius float64) (min, max mathx.Vector3) {
	r := mathx.Vector3{X: radius, Y: radius, Z: radius}
	return center.Sub(r), center.Add(r)
}

func componentMin(a, b mathx.Vector3) mathx.Vector3 {
	return mathx.Vector3{X: minF(a.X, b.X), Y: minF(a.Y, b.Y), Z: minF(a.Z, b.Z)}
}

func componentMax(a, b mathx.Vector3) mathx.Vector3 {
	return mathx.Vector3{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y), Z: maxF(a.Z, b.Z)}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func addSurface(chunks *Chunks, idx int, surface scenemodel.Surface) {
	switch s := surface.(type) {
	case scenemodel.InterpolatedSurface:
		insertStaticTriangle(chunks, idx, s.Coords)
	case *scenemodel.KeyframeSurface:
		for i := 0; i < len(s.Keyframes)-1; i++ {
			refineAndInsertSurfacePair(chunks, idx, s.Keyframes[i], s.Keyframes[i+1])
		}
	}
}

func addReceiver(chunks *Chunks, receiver scenemodel.Receiver) {
	switch r := receiver.(type) {
	case scenemodel.InterpolatedReceiver:
		insertStaticReceiver(chunks, r.Position, r.Radius)
	case *scenemodel.KeyframeReceiver:
		for i := 0; i < len(r.Keyframes)-1; i++ {
			refineAndInsertReceiverPair(chunks, r.Keyframes[i], r.Keyframes[i+1], r.Radius)
		}
	}
}

func insertStaticTriangle(chunks *Chunks, idx int, tri [3]mathx.Vector3) {
	min, max := triangleWorldBox(tri)
	box := chunks.worldBoxToCellBox(min, max)
	entry := TimedEntry{Index: idx, Kind: Static}
	chunks.forEachCellInBox(box, func(ix, iy, iz int) {
		chunks.addEntry(ix, iy, iz, entry, false)
	})
}

func insertStaticReceiver(chunks *Chunks, position mathx.Vector3, radius float64) {
	min, max := sphereWorldBox(position, radius)
	box := chunks.worldBoxToCellBox(min, max)
	entry := TimedEntry{Index: 0, Kind: Static}
	chunks.forEachCellInBox(box, func(ix, iy, iz int) {
		chunks.addEntry(ix, iy, iz, entry, true)
	})
}

// refineAndInsertSurfacePair applies the binary-refinement rule to a
// consecutive keyframe pair, inserting a Dynamic entry for each stable
// sub-interval into every cell its bounding box covers.
func refineAndInsertSurfacePair(chunks *Chunks, idx int, first, second scenemodel.SurfaceKeyframe) {
	bboxAt := func(t uint32) cellBox {
		coords := scenemodel.InterpolateSurfaceKeyframes([]scenemodel.SurfaceKeyframe{first, second}, t)
		min, max := triangleWorldBox(coords)
		return chunks.worldBoxToCellBox(min, max)
	}
	refineAndInsert(chunks, first.Time, second.Time, bboxAt, func(box cellBox, tA, tB uint32) {
		entry := TimedEntry{Index: idx, Kind: Dynamic, TEnter: tA, TExit: tB}
		chunks.forEachCellInBox(box, func(ix, iy, iz int) {
			chunks.addEntry(ix, iy, iz, entry, false)
		})
	})
}

func refineAndInsertReceiverPair(chunks *Chunks, first, second scenemodel.CoordinateKeyframe, radius float64) {
	bboxAt := func(t uint32) cellBox {
		pos := scenemodel.InterpolateCoordinateKeyframes([]scenemodel.CoordinateKeyframe{first, second}, t)
		min, max := sphereWorldBox(pos, radius)
		return chunks.worldBoxToCellBox(min, max)
	}
	refineAndInsert(chunks, first.Time, second.Time, bboxAt, func(box cellBox, tA, tB uint32) {
		entry := TimedEntry{Index: 0, Kind: Dynamic, TEnter: tA, TExit: tB}
		chunks.forEachCellInBox(box, func(ix, iy, iz int) {
			chunks.addEntry(ix, iy, iz, entry, true)
		})
	})
}

// refineAndInsert implements the binary-refinement rule generically over a
// bboxAt(t) evaluator, invoking insert(box, tA, tB) for every stable
// sub-interval [tA, tB] it finds between tLo and tHi.
func refineAndInsert(_ *Chunks, tLo, tHi uint32, bboxAt func(uint32) cellBox, insert func(box cellBox, tA, tB uint32)) {
	for tLo < tHi {
		bboxLo := bboxAt(tLo)
		tMid := ceilAverage(tLo, tHi)
		for tMid > tLo+1 && bboxAt(tMid) != bboxLo {
			tMid = ceilAverage(tLo, tMid)
		}

		for tMid < tHi && bboxAt(tMid) == bboxLo {
			tMid++
		}

		insert(bboxLo, tLo, tMid-1)
		tLo = tMid
	}
}

func ceilAverage(a, b uint32) uint32 {
	return uint32((uint64(a) + uint64(b) + 1) / 2)
}
