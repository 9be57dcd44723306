package common

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Telemetry holds atomic counters for bulk load progress tracking.
type Telemetry struct {
	totalRows  uint64
	totalBytes uint64

	running  atomic.Bool
	stopCh   chan struct{}
	silent   bool
	lastRows uint64
	lastTime time.Time
}

// NewTelemetry creates a new Telemetry instance.
func NewTelemetry() *Telemetry {
	return &Telemetry{stopCh: make(chan struct{})}
}

// AddRows atomically increments the loaded row counter.
func (t *Telemetry) AddRows(count uint64) {
	atomic.AddUint64(&t.totalRows, count)
}

// AddBytes atomically increments the raw bytes read counter.
func (t *Telemetry) AddBytes(count uint64) {
	atomic.AddUint64(&t.totalBytes, count)
}

// TotalRows atomically reads the loaded row counter.
func (t *Telemetry) TotalRows() uint64 {
	return atomic.LoadUint64(&t.totalRows)
}

// TotalBytes atomically reads the bytes read counter.
func (t *Telemetry) TotalBytes() uint64 {
	return atomic.LoadUint64(&t.totalBytes)
}

// SetSilent enables or disables progress output.
func (t *Telemetry) SetSilent(silent bool) {
	t.silent = silent
}

// StartReporter starts a background goroutine that prints load progress
// once per second using newline-based output so it interleaves cleanly
// with log.Printf statements.
func (t *Telemetry) StartReporter() {
	if t.running.Load() {
		return
	}
	t.running.Store(true)
	t.lastTime = time.Now()
	t.lastRows = 0
	go t.reporterLoop()
}

// StopReporter stops the background reporter goroutine.
func (t *Telemetry) StopReporter() {
	if !t.running.Load() {
		return
	}
	t.running.Store(false)
	close(t.stopCh)
}

func (t *Telemetry) reporterLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.printStatus()
		}
	}
}

func (t *Telemetry) printStatus() {
	if t.silent {
		return
	}

	now := time.Now()
	elapsed := now.Sub(t.lastTime).Seconds()
	if elapsed < 0.001 {
		return
	}

	currentRows := t.TotalRows()
	deltaRows := currentRows - t.lastRows
	rowsPerSec := float64(deltaRows) / elapsed
	mib := float64(t.TotalBytes()) / (1024 * 1024)

	fmt.Printf("[Progress] Rows: %d | Rate: %.0f rows/s | Read: %.2f MiB\n",
		currentRows, rowsPerSec, mib)

	t.lastRows = currentRows
	t.lastTime = now
}

// Reset resets all counters.
func (t *Telemetry) Reset() {
	atomic.StoreUint64(&t.totalRows, 0)
	atomic.StoreUint64(&t.totalBytes, 0)
	t.lastRows = 0
	t.lastTime = time.Now()
}
