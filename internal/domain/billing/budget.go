package billing

// BudgetGuard enforces an optional spending ceiling against a shadow total
// that runs ahead of the authoritative cart total. Two scans can arrive
// faster than the cart total recomputes; debiting the shadow at decision
// time closes the window where both would pass a check that, combined,
// busts the budget. The shadow is only a same-burst race guard: Reconcile
// snaps it back to the authoritative total after every committed mutation.
type BudgetGuard struct {
	limitCents  *int64
	shadowCents int64
}

// NewBudgetGuard returns a guard with no limit set.
func NewBudgetGuard() *BudgetGuard {
	return &BudgetGuard{}
}

// Limit returns the current ceiling and whether one is set.
func (g *BudgetGuard) Limit() (int64, bool) {
	if g.limitCents == nil {
		return 0, false
	}
	return *g.limitCents, true
}

// ShadowCents exposes the optimistic running total.
func (g *BudgetGuard) ShadowCents() int64 {
	return g.shadowCents
}

// Set establishes the ceiling and aligns the shadow with the authoritative
// total at that moment.
func (g *BudgetGuard) Set(limitCents, authoritativeTotalCents int64) {
	g.limitCents = &limitCents
	g.shadowCents = authoritativeTotalCents
}

// Increase raises the ceiling. Returns false when no limit is set.
func (g *BudgetGuard) Increase(amountCents int64) bool {
	if g.limitCents == nil || amountCents <= 0 {
		return false
	}
	next := *g.limitCents + amountCents
	g.limitCents = &next
	return true
}

// Clear removes the ceiling; the shadow is meaningless until the next Set.
func (g *BudgetGuard) Clear() {
	g.limitCents = nil
	g.shadowCents = 0
}

// PreCheck reports whether adding costCents keeps the projected total
// within the limit. A rejected check mutates nothing; the caller must
// abort the cart mutation entirely.
func (g *BudgetGuard) PreCheck(costCents int64) bool {
	if g.limitCents == nil {
		return true
	}
	return g.shadowCents+costCents <= *g.limitCents+BudgetEpsilonCents
}

// Commit debits the shadow immediately, before the cart mutation's effects
// are observable, so a rapid follow-up scan sees the pending addition.
func (g *BudgetGuard) Commit(costCents int64) {
	g.shadowCents += costCents
}

// Reconcile discards any drift by snapping the shadow to the authoritative
// cart total. Called after every committed mutation.
func (g *BudgetGuard) Reconcile(authoritativeTotalCents int64) {
	g.shadowCents = authoritativeTotalCents
}
