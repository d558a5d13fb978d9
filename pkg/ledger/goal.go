package ledger

import "math"

// Goal is a savings target, optionally linked to one bank account. Saved is
// only ever changed by the reconciliation engine and never goes negative.
type Goal struct {
	ID              string
	Name            string
	Target          float64
	Saved           float64
	IsTracked       bool
	LinkedAccountID string // empty when the goal has no linked account
}

// Progress reports saved/target clamped to [0,1]. A goal without a positive
// target has no meaningful progress and reports 0.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}

	return math.Min(g.Saved/g.Target, 1.0)
}
