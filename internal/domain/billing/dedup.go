package billing

import (
	"sync"
	"time"
)

// DefaultDedupWindow is how long a barcode stays suppressed after being
// admitted. Scanner hardware tends to re-fire the same code several times
// per second while the item is in front of the lens.
const DefaultDedupWindow = 3 * time.Second

// ScanGate filters scan events before they reach the cart. It combines a
// per-barcode cooldown (duplicate suppression) with a coarse in-flight
// gate that admits at most one scan resolution at a time, so budget
// pre-check/commit pairs never interleave across scans.
type ScanGate struct {
	mu sync.Mutex

	window time.Duration
	now    func() time.Time

	cooldownCode  string
	cooldownUntil time.Time

	inFlight bool
}

// NewScanGate returns a gate with the given cooldown window. A zero or
// negative window falls back to DefaultDedupWindow.
func NewScanGate(window time.Duration) *ScanGate {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &ScanGate{window: window, now: time.Now}
}

// SetClock injects a clock for tests.
func (g *ScanGate) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

// AdmitBarcode reports whether a barcode scan should be processed. An
// admitted code starts (or restarts) its cooldown; the same code arriving
// again within the window is suppressed. Image scans do not go through
// this check, each capture is independent.
func (g *ScanGate) AdmitBarcode(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if code == g.cooldownCode && now.Before(g.cooldownUntil) {
		return false
	}
	g.cooldownCode = code
	g.cooldownUntil = now.Add(g.window)
	return true
}

// TryAcquire takes the in-flight slot. A scan arriving while another is
// being resolved is dropped outright.
func (g *ScanGate) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

// Release frees the in-flight slot.
func (g *ScanGate) Release() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}
