package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitBarcodeWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	gate := NewScanGate(3 * time.Second)
	gate.SetClock(func() time.Time { return now })

	require.True(t, gate.AdmitBarcode("8906010501259"))

	// same code within the window is suppressed
	now = now.Add(1 * time.Second)
	assert.False(t, gate.AdmitBarcode("8906010501259"))

	// a different code passes and takes over the cooldown slot
	assert.True(t, gate.AdmitBarcode("8904155905062"))
	assert.True(t, gate.AdmitBarcode("8906010501259"))

	// admission restarted the cooldown; the code stays suppressed until
	// the window elapses again
	assert.False(t, gate.AdmitBarcode("8906010501259"))
	now = now.Add(3100 * time.Millisecond)
	assert.True(t, gate.AdmitBarcode("8906010501259"))
}

func TestInFlightGate(t *testing.T) {
	gate := NewScanGate(0)

	require.True(t, gate.TryAcquire())
	assert.False(t, gate.TryAcquire(), "second scan while one is in flight is dropped")

	gate.Release()
	assert.True(t, gate.TryAcquire())
	gate.Release()
}
