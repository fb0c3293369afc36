// Package budget provides the run-scoped cap on external service calls,
// shared across stages and collections within one run.
package budget

// Budget is a monotonically decreasing counter of remaining service calls.
// It never goes negative; once it reaches zero no further calls are made
// for the remainder of the run.
type Budget struct {
	remaining int
}

// New returns a budget allowing n calls. Negative values clamp to zero.
func New(n int) *Budget {
	if n < 0 {
		n = 0
	}
	return &Budget{remaining: n}
}

// Remaining reports how many calls are still allowed.
func (b *Budget) Remaining() int {
	return b.remaining
}

// Exhausted reports whether the budget has run out.
func (b *Budget) Exhausted() bool {
	return b.remaining <= 0
}

// Take consumes up to n units and returns how many were actually granted.
func (b *Budget) Take(n int) int {
	if n < 0 {
		n = 0
	}
	if n > b.remaining {
		n = b.remaining
	}
	b.remaining -= n
	return n
}
