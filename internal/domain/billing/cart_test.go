package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNewAndTotals(t *testing.T) {
	cart := NewCart()
	cart.AddNew("Balaji wafers", 1000, "snacks", "8906010501259", false)
	cart.AddNew("Pen", 20000, "stationary", "8904155905062", false)

	assert.Equal(t, int64(21000), cart.SubtotalCents())
	assert.Equal(t, int64(3780), cart.TaxCents())
	assert.Equal(t, int64(24780), cart.TotalCents())
}

func TestFindByBarcode(t *testing.T) {
	cart := NewCart()
	added := cart.AddNew("Pen", 20000, "stationary", "8904155905062", false)

	item, ok := cart.FindByBarcode("8904155905062")
	require.True(t, ok)
	assert.Equal(t, added.ID, item.ID)

	_, ok = cart.FindByBarcode("unknown")
	assert.False(t, ok)

	// items without a barcode never match the empty string
	cart.AddNew("Manual Item", 500, "General", "", true)
	_, ok = cart.FindByBarcode("")
	assert.False(t, ok)
}

func TestUpdateQuantityClampsAtZero(t *testing.T) {
	cart := NewCart()
	item := cart.AddNew("compass", 15000, "General", "6980682959046", false)

	updated, present := cart.UpdateQuantity(item.ID, 2)
	require.True(t, present)
	assert.Equal(t, 3, updated.Quantity)

	// quantity never goes negative; reaching zero removes the item
	_, present = cart.UpdateQuantity(item.ID, -5)
	assert.False(t, present)
	assert.Equal(t, 0, cart.Len())

	_, present = cart.UpdateQuantity(item.ID, 1)
	assert.False(t, present, "removed item must not be resurrected")
}

func TestUpdateQuantitySequencesNeverGoNegative(t *testing.T) {
	cart := NewCart()
	item := cart.AddNew("IODEX", 4200, "Personal care", "89006245", false)

	for _, delta := range []int{3, -1, -1, 5, -10, 2} {
		cart.UpdateQuantity(item.ID, delta)
		for _, it := range cart.Snapshot() {
			assert.GreaterOrEqual(t, it.Quantity, 1)
		}
	}
}

func TestRemove(t *testing.T) {
	cart := NewCart()
	a := cart.AddNew("a", 100, "General", "", false)
	b := cart.AddNew("b", 200, "General", "", false)

	require.True(t, cart.Remove(a.ID))
	assert.False(t, cart.Remove(uuid.New()))
	assert.Equal(t, 1, cart.Len())

	got, ok := cart.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
}

func TestSnapshotIsDetached(t *testing.T) {
	cart := NewCart()
	item := cart.AddNew("Pen", 20000, "stationary", "8904155905062", false)

	snap := cart.Snapshot()
	cart.UpdateQuantity(item.ID, 4)
	cart.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
}

func TestRestore(t *testing.T) {
	cart := NewCart()
	cart.Restore([]LineItem{
		{ID: uuid.New(), Name: "Kangaro", PriceCents: 1200, Category: "stationary", Quantity: 2, Barcode: "8901057510028"},
	})
	assert.Equal(t, int64(2400), cart.SubtotalCents())

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, int64(0), cart.TotalCents())
}
