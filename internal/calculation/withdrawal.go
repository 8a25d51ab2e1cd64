package calculation

// MaxSustainableWithdrawal finds the largest constant annual expense for which
// YearsLasted reports at least targetYears. A targetYears of zero selects
// DefaultTargetYears.
//
// The search bisects [0, balance] for exactly SearchIterations steps and returns
// the last feasible midpoint, so identical inputs always give identical output.
// It assumes survival is non-increasing in the expense. When no expense in the
// interval is feasible (non-positive balance, or a rate that depletes the balance
// even without withdrawals) the result stays at zero.
func MaxSustainableWithdrawal(balance, rate float64, targetYears int) float64 {
	if targetYears == 0 {
		targetYears = DefaultTargetYears
	}

	low, high := 0.0, balance
	optimal := 0.0
	for i := 0; i < SearchIterations; i++ {
		mid := (low + high) / 2
		if YearsLasted(balance, mid, rate) >= targetYears {
			optimal = mid
			low = mid
		} else {
			high = mid
		}
	}
	return optimal
}
