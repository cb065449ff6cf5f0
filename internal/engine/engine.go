// Package engine orchestrates the ray tracer across an input sample
// buffer: partitioning samples into chunks, running a worker pool over
// them, and reducing per-chunk convolution results into a single output
// buffer.
package engine

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"raytraceverb/internal/chunkindex"
	"raytraceverb/internal/ir"
	"raytraceverb/internal/scenemodel"
	"raytraceverb/internal/trace"
)

// ChunkSize is the number of input samples a single worker job covers.
const ChunkSize = 1000

// SceneData bundles a scene with its prebuilt chunk acceleration structure
// and bounds, the read-only state shared by every worker.
type SceneData struct {
	Scene    scenemodel.Scene
	Chunks   *chunkindex.Chunks
	Bounds   scenemodel.Bounds
	GridSize int
}

// NewSceneData builds the chunk index for scene at the given grid
// resolution.
func NewSceneData(scene scenemodel.Scene, gridSize int) *SceneData {
	chunks, bounds := chunkindex.Build(scene, gridSize)
	return &SceneData{Scene: scene, Chunks: chunks, Bounds: bounds, GridSize: gridSize}
}

// Config holds the per-run simulation parameters.
type Config struct {
	NumRays       uint32
	Velocity      float64
	SampleRate    float64
	ScalingFactor float64
	Snapshot      bool
}

type chunkJob struct {
	start   int
	samples []float64
}

type chunkResult struct {
	start  int
	buffer []float64
}

// Simulate runs the ray tracer over samples and returns the convolved
// output buffer (length >= len(samples)). progress is incremented once per
// finished 1000-sample chunk; rng seeds a separate generator for each chunk,
// keyed by the chunk's start sample, so the rays traced for a chunk do not
// depend on which worker runs it and are reproducible given the same seed.
func (sd *SceneData) Simulate(samples []float64, cfg Config, progress *atomic.Uint32, rng *rand.Rand) []float64 {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(samples)/ChunkSize+1 {
		numWorkers = len(samples)/ChunkSize + 1
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan chunkJob)
	results := make(chan chunkResult)

	var workers sync.WaitGroup
	baseSeed := rng.Uint64()
	for w := 0; w < numWorkers; w++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for job := range jobs {
				chunkRNG := rand.New(rand.NewPCG(baseSeed, uint64(job.start)))
				results <- sd.processChunk(job, cfg, chunkRNG)
				progress.Add(1)
			}
		}()
	}

	go func() {
		for start := 0; start < len(samples); start += ChunkSize {
			end := start + ChunkSize
			if end > len(samples) {
				end = len(samples)
			}
			jobs <- chunkJob{start: start, samples: samples[start:end]}
		}
		close(jobs)
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	output := make([]float64, len(samples))
	for result := range results {
		mergeInto(&output, result.start, result.buffer)
	}
	return output
}

// processChunk traces every sample in job and convolves each sample's
// impulse response into a chunk-local buffer, which the caller later merges
// into the global output at job.start. In snapshot mode the scene is
// re-frozen at each sample's own time rather than traced dynamically,
// trading temporal accuracy for per-sample speed.
func (sd *SceneData) processChunk(job chunkJob, cfg Config, rng *rand.Rand) chunkResult {
	buffer := make([]float64, len(job.samples))

	for i, sample := range job.samples {
		t := uint32(job.start + i)

		active := sd
		if cfg.Snapshot {
			active = sd.snapshotAt(t)
		}

		emitterAtT := active.Scene.Emitter.AtTime(t)

		var arrivals []trace.Arrival
		for n := uint32(0); n < cfg.NumRays; n++ {
			direction := emitterAtT.Emission.Direction(rng)
			ray, err := trace.Launch(direction, emitterAtT.Position, t, cfg.Velocity, cfg.SampleRate)
			if err != nil {
				continue
			}
			if arrival, ok := trace.Propagate(ray, active.Scene, active.Chunks, active.Bounds, rng); ok {
				arrivals = append(arrivals, arrival)
			}
		}

		sampleIR := ir.ToImpulseResponse(arrivals, cfg.NumRays)
		required := i + len(sampleIR)
		if required > len(buffer) {
			grown := make([]float64, required)
			copy(grown, buffer)
			buffer = grown
		}
		ir.Accumulate(buffer, sampleIR, sample, i, cfg.ScalingFactor)
	}

	return chunkResult{start: job.start, buffer: buffer}
}

// snapshotAt freezes scene's emitter, receiver and every surface at time t
// and rebuilds the chunk index for that static snapshot. Called once per
// sample in snapshot mode, not once per run.
func (sd *SceneData) snapshotAt(t uint32) *SceneData {
	frozenSurfaces := make([]scenemodel.Surface, len(sd.Scene.Surfaces))
	for i, s := range sd.Scene.Surfaces {
		frozenSurfaces[i] = s.AtTime(t)
	}
	frozenScene := scenemodel.Scene{
		Surfaces: frozenSurfaces,
		Receiver: sd.Scene.Receiver.AtTime(t),
		Emitter:  sd.Scene.Emitter.AtTime(t),
	}
	return NewSceneData(frozenScene, sd.GridSize)
}

// mergeInto adds src into *dst starting at offset, growing *dst with zeros
// first if needed. Simulate calls it on its collecting goroutine for each
// chunk result as it arrives, in completion order, while other workers may
// still be running.
func mergeInto(dst *[]float64, offset int, src []float64) {
	required := offset + len(src)
	if required > len(*dst) {
		grown := make([]float64, required)
		copy(grown, *dst)
		*dst = grown
	}
	for i, v := range src {
		(*dst)[offset+i] += v
	}
}
