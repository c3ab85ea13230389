// Package savings holds the arithmetic rules for the single running savings
// balance: validation, the floored subtraction, and the goal progress shown
// by the UI.
package savings

import "math"

// ValidAmount reports whether v can be stored as a balance or goal (zero allowed).
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ValidDelta reports whether v can be added to or removed from the balance.
// Unlike ValidAmount, zero is rejected.
func ValidDelta(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Subtract removes delta from current, floored at zero. Add has no such
// floor; the asymmetry is intentional.
func Subtract(current, delta float64) float64 {
	if delta >= current {
		return 0
	}
	return current - delta
}

// Progress returns the goal completion percentage, rounded and capped at
// 100. The second return is false when goal is not positive: progress is
// undefined then and callers omit it.
func Progress(current, goal float64) (int, bool) {
	if goal <= 0 {
		return 0, false
	}
	p := int(math.Round(current / goal * 100))
	if p > 100 {
		p = 100
	}
	return p, true
}
