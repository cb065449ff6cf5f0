package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"raytraceverb/internal/engine"
	"raytraceverb/internal/irspectrum"
	"raytraceverb/internal/progressui"
	"raytraceverb/internal/progressweb"
	"raytraceverb/internal/scenebuilder"
	"raytraceverb/internal/scenemodel"
	"raytraceverb/internal/trace"
	"raytraceverb/internal/wave"
)

const (
	defaultNumberOfRays  = 100000
	defaultScalingFactor = 10000.0
	defaultGridSize      = 16
)

// Errors.
var (
	ErrInvalidSceneCode = errors.New("main: invalid scene code")
	ErrEmptyWaveData    = errors.New("main: input wave file has no samples")
)

var sceneNames = map[int]string{
	0: "static cube",
	1: "static receiver",
	2: "approaching receiver 1s",
	3: "approaching receiver 4s",
	4: "rotating cube 1s",
}

func main() {
	fname := flag.String("fname", "", "input WAV file (required)")
	sceneCode := flag.Int("scene", -1, "scene index 0-4 (required)")
	rays := flag.Uint("rays", defaultNumberOfRays, "number of rays launched per sample")
	scalingFactor := flag.Float64("scaling-factor", defaultScalingFactor, "divisor applied to the impulse response before convolution")
	snapshotMethod := flag.Bool("snapshot-method", false, "freeze the scene at each sample's own time instead of tracing the full dynamic scene")
	outfile := flag.String("outfile", "result.wav", "output WAV file")
	gridSize := flag.Int("grid-size", defaultGridSize, "chunk acceleration structure resolution (cells per axis)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "write logs to this file instead of stderr")
	progressUIKind := flag.String("progress-ui", "plain", "progress display: tui, plain, or none")
	dashboardAddr := flag.String("dashboard-addr", "", "if set (e.g. \":8090\"), serve a live progress dashboard at this address")
	seed := flag.Uint64("seed", 1, "PRNG seed for ray sampling")
	analyzeIR := flag.String("analyze-ir", "", "if set, write a magnitude-spectrum report of the convolved output to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s --fname=<in.wav> --scene=<0..4> [--rays=%d] [--scaling-factor=%g] [--snapshot-method] [--outfile=result.wav]\n",
			os.Args[0], defaultNumberOfRays, defaultScalingFactor)
		flag.PrintDefaults()
	}
	flag.Parse()

	setupLogging(*logFile, *logLevel)

	if err := run(runConfig{
		fname:          *fname,
		sceneCode:      *sceneCode,
		rays:           uint32(*rays),
		scalingFactor:  *scalingFactor,
		snapshotMethod: *snapshotMethod,
		outfile:        *outfile,
		gridSize:       *gridSize,
		progressUIKind: *progressUIKind,
		dashboardAddr:  *dashboardAddr,
		seed:           *seed,
		analyzeIR:      *analyzeIR,
	}); err != nil {
		slog.Error("Run failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(logFile, logLevel string) {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	output := os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		output = file
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	slog.Info("Starting raytraceverb", "args", os.Args)
}

type runConfig struct {
	fname          string
	sceneCode      int
	rays           uint32
	scalingFactor  float64
	snapshotMethod bool
	outfile        string
	gridSize       int
	progressUIKind string
	dashboardAddr  string
	seed           uint64
	analyzeIR      string
}

func run(cfg runConfig) error {
	if cfg.fname == "" {
		return fmt.Errorf("%w: please provide an input file with --fname=FILENAME", ErrEmptyWaveData)
	}

	inputFile, err := os.Open(cfg.fname)
	if err != nil {
		return fmt.Errorf("main: opening input file: %w", err)
	}
	defer inputFile.Close()

	header, samples, err := wave.ReadWave(inputFile)
	if err != nil {
		return fmt.Errorf("main: parsing input WAV: %w", err)
	}

	input := samples.ToFloat64()
	if len(input) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyWaveData, cfg.fname)
	}

	scene, sceneName, err := buildScene(cfg.sceneCode, uint32(header.SampleRate))
	if err != nil {
		return err
	}
	slog.Info("Selected scene", "code", cfg.sceneCode, "name", sceneName)

	sd := engine.NewSceneData(scene, cfg.gridSize)
	chunksTotal := uint32(len(input)+engine.ChunkSize-1) / engine.ChunkSize

	var progress atomic.Uint32
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	done := make(chan struct{})
	stopProgressUI := startProgressDisplay(ctx, cfg, &progress, chunksTotal, done)

	slog.Info("Calculating impulse responses", "samples", len(input), "rays", cfg.rays)
	start := time.Now()

	engineCfg := engine.Config{
		NumRays:       cfg.rays,
		Velocity:      trace.DefaultPropagationSpeed,
		SampleRate:    float64(header.SampleRate),
		ScalingFactor: 1.0 / cfg.scalingFactor,
		Snapshot:      cfg.snapshotMethod,
	}
	rng := newRNG(cfg.seed)
	output := sd.Simulate(input, engineCfg, &progress, rng)

	close(done)
	stopProgressUI()

	elapsed := time.Since(start)
	slog.Info("Finished calculation", "elapsed", elapsed)

	if cfg.analyzeIR != "" {
		if err := writeSpectrumReport(cfg.analyzeIR, output, float64(header.SampleRate)); err != nil {
			slog.Warn("Failed to write IR spectrum report", "error", err)
		}
	}

	outSamples, clipped, err := encodeOutput(header, output)
	if err != nil {
		return fmt.Errorf("main: encoding output: %w", err)
	}
	if clipped {
		slog.Warn("Output clipped during final cast to output bit depth")
	}

	outputFile, err := os.Create(cfg.outfile)
	if err != nil {
		return fmt.Errorf("main: creating output file: %w", err)
	}
	defer outputFile.Close()

	if err := wave.WriteWave(outputFile, header, outSamples); err != nil {
		return fmt.Errorf("main: writing output WAV: %w", err)
	}

	slog.Info("Wrote output", "file", cfg.outfile)
	return nil
}

func buildScene(sceneCode int, sampleRate uint32) (scenemodel.Scene, string, error) {
	name, ok := sceneNames[sceneCode]
	if !ok {
		return scenemodel.Scene{}, "", fmt.Errorf("%w: %d (supported: 0-4)", ErrInvalidSceneCode, sceneCode)
	}

	var scene scenemodel.Scene
	var err error
	switch sceneCode {
	case 0:
		scene, err = scenebuilder.StaticCubeScene()
	case 1:
		scene, err = scenebuilder.StaticReceiverScene()
	case 2:
		scene, err = scenebuilder.ApproachingReceiverScene(sampleRate)
	case 3:
		scene, err = scenebuilder.LongApproachingReceiverScene(sampleRate)
	case 4:
		scene, err = scenebuilder.RotatingCubeScene(sampleRate)
	}
	if err != nil {
		return scenemodel.Scene{}, "", fmt.Errorf("main: building scene %d: %w", sceneCode, err)
	}
	return scene, name, nil
}

// startProgressDisplay launches the requested progress UI in the
// background and returns a function that blocks until it has shut down.
func startProgressDisplay(ctx context.Context, cfg runConfig, progress *atomic.Uint32, chunksTotal uint32, done <-chan struct{}) func() {
	uiStopped := make(chan struct{})

	switch cfg.progressUIKind {
	case "tui":
		go func() {
			defer close(uiStopped)
			if err := progressui.Run(progress, chunksTotal, cfg.rays, done); err != nil {
				slog.Warn("Progress TUI failed, falling back silently", "error", err)
			}
		}()
	case "none":
		close(uiStopped)
	default:
		go func() {
			defer close(uiStopped)
			progressui.RunPlain(progress, chunksTotal, done)
		}()
	}

	var dashboardServer *progressweb.Server
	if cfg.dashboardAddr != "" {
		port := parsePort(cfg.dashboardAddr)
		dashboardServer = progressweb.NewServer(progress, chunksTotal, cfg.rays, port)
		go func() {
			if err := dashboardServer.Start(); err != nil {
				slog.Error("Progress dashboard error", "error", err)
			}
		}()
	}

	return func() {
		<-uiStopped
		if dashboardServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := dashboardServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("Progress dashboard shutdown error", "error", err)
			}
		}
		_ = ctx
	}
}

func parsePort(addr string) int {
	port := 8090
	_, _ = fmt.Sscanf(addr, ":%d", &port)
	return port
}

func writeSpectrumReport(path string, output []float64, sampleRate float64) error {
	bins, err := irspectrum.Analyze(output, sampleRate)
	if err != nil {
		return fmt.Errorf("main: analyzing spectrum: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("main: creating spectrum report: %w", err)
	}
	defer file.Close()

	for _, bin := range bins {
		if _, err := fmt.Fprintf(file, "%10.2f Hz  %8.2f dB\n", bin.FrequencyHz, bin.MagnitudeDB); err != nil {
			return fmt.Errorf("main: writing spectrum report: %w", err)
		}
	}
	return nil
}
