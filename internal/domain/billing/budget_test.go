package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreCheckUnlimited(t *testing.T) {
	g := NewBudgetGuard()
	assert.True(t, g.PreCheck(1_000_000_00))
}

// Budget 100.00, tax 18%: one item at 80.00 costs 94.40 with tax and
// passes; a follow-up at 10.00 (11.80) projects 106.20 and is rejected
// without touching the shadow.
func TestPreCheckAgainstShadow(t *testing.T) {
	g := NewBudgetGuard()
	g.Set(10000, 0)

	first := WithTax(8000)
	require.Equal(t, int64(9440), first)
	require.True(t, g.PreCheck(first))
	g.Commit(first)
	assert.Equal(t, int64(9440), g.ShadowCents())

	second := WithTax(1000)
	require.Equal(t, int64(1180), second)
	assert.False(t, g.PreCheck(second))
	assert.Equal(t, int64(9440), g.ShadowCents(), "rejection must not mutate the shadow")
}

func TestPreCheckEpsilon(t *testing.T) {
	g := NewBudgetGuard()
	g.Set(10000, 0)

	assert.True(t, g.PreCheck(10005))
	assert.False(t, g.PreCheck(10006))
}

func TestReconcileDiscardsDrift(t *testing.T) {
	g := NewBudgetGuard()
	g.Set(50000, 0)

	g.Commit(9440)
	g.Reconcile(9440)
	assert.Equal(t, int64(9440), g.ShadowCents())

	// drift between commit and the authoritative recompute is discarded
	g.Commit(1180)
	g.Reconcile(10620)
	assert.Equal(t, int64(10620), g.ShadowCents())
}

func TestIncrease(t *testing.T) {
	g := NewBudgetGuard()
	assert.False(t, g.Increase(1000), "increase is meaningless with no limit set")

	g.Set(10000, 9440)
	require.False(t, g.PreCheck(1180))
	require.True(t, g.Increase(5000))

	limit, ok := g.Limit()
	require.True(t, ok)
	assert.Equal(t, int64(15000), limit)
	assert.True(t, g.PreCheck(1180))

	assert.False(t, g.Increase(0))
	assert.False(t, g.Increase(-100))
}

func TestClear(t *testing.T) {
	g := NewBudgetGuard()
	g.Set(10000, 9440)
	g.Clear()

	_, ok := g.Limit()
	assert.False(t, ok)
	assert.Equal(t, int64(0), g.ShadowCents())
	assert.True(t, g.PreCheck(999999))
}

func TestSetAlignsShadowWithAuthoritativeTotal(t *testing.T) {
	g := NewBudgetGuard()
	g.Set(30000, 12000)
	assert.Equal(t, int64(12000), g.ShadowCents())
	assert.True(t, g.PreCheck(18000))
	assert.False(t, g.PreCheck(18006))
}
