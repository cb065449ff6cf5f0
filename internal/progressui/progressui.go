// Package progressui provides a full-screen terminal progress display for a
// running simulation, adapted from a live-meter TUI idiom into a batch-job
// progress view.
package progressui

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nsf/termbox-go"
)

const (
	colDef    = termbox.ColorDefault
	colWhite  = termbox.ColorWhite
	colGreen  = termbox.ColorGreen
	colYellow = termbox.ColorYellow
	colCyan   = termbox.ColorCyan
)

// Snapshot is the state the display redraws on each tick.
type Snapshot struct {
	ChunksDone  uint32
	ChunksTotal uint32
	RaysCast    uint64
	CurrentTime uint32
	Elapsed     time.Duration
}

// Run draws a full-screen progress view until done is closed, polling
// progress every 50ms. chunksTotal is the number of 1000-sample chunks the
// run will process; raysPerSample lets the display estimate total rays cast
// without a second counter.
func Run(progress *atomic.Uint32, chunksTotal uint32, raysPerSample uint32, done <-chan struct{}) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("progressui: init: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	start := time.Now()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	draw(snapshot(progress, chunksTotal, raysPerSample, start))

	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			draw(snapshot(progress, chunksTotal, raysPerSample, start))
		}
	}
}

func snapshot(progress *atomic.Uint32, chunksTotal, raysPerSample uint32, start time.Time) Snapshot {
	done := progress.Load()
	return Snapshot{
		ChunksDone:  done,
		ChunksTotal: chunksTotal,
		RaysCast:    uint64(done) * 1000 * uint64(raysPerSample),
		CurrentTime: done * 1000,
		Elapsed:     time.Since(start),
	}
}

func draw(s Snapshot) {
	_ = termbox.Clear(colDef, colDef)

	printTB(0, 0, colCyan, colDef, "Room impulse response synthesis - in progress")
	printTB(0, 1, colWhite, colDef, fmt.Sprintf("Elapsed: %s", s.Elapsed.Round(time.Second)))
	printTB(0, 2, colDef, colDef, "----------------------------------------------------")

	var ratio float64
	if s.ChunksTotal > 0 {
		ratio = float64(s.ChunksDone) / float64(s.ChunksTotal)
	}
	drawBar(4, ratio)

	printTB(0, 6, colWhite, colDef, fmt.Sprintf("Chunks:  %d / %d", s.ChunksDone, s.ChunksTotal))
	printTB(0, 7, colWhite, colDef, fmt.Sprintf("Rays:    %d", s.RaysCast))
	printTB(0, 8, colWhite, colDef, fmt.Sprintf("Sample:  %d", s.CurrentTime))

	termbox.Flush()
}

func drawBar(yPos int, ratio float64) {
	const barWidth = 60
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(barWidth))

	printTB(0, yPos, colDef, colDef, fmt.Sprintf("[%3.0f%%] ", ratio*100))
	startX := 8
	for i := range barWidth {
		barChar := '░'
		if i < filled {
			barChar = '█'
		}
		termbox.SetCell(startX+i, yPos, barChar, colGreen, colDef)
	}
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}

// RunPlain prints a carriage-return-updated plain counter every 100ms, the
// non-full-screen alternative to Run, grounded on original_source/src/main.rs's
// spawn_progress_counter_thread.
func RunPlain(progress *atomic.Uint32, chunksTotal uint32, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			fmt.Println()
			return
		case <-ticker.C:
			fmt.Printf("\rchunks: %d/%d", progress.Load(), chunksTotal)
		}
	}
}
