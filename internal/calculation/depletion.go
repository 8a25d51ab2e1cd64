package calculation

func deplete(balance, expense, rate float64, visit func(YearStep)) int {
	years := 0
	for balance > 0 && years < MaxSimulationYears {
		balance = growthStep(balance, rate, -expense)
		years++
		if visit != nil {
			visit(YearStep{Year: years, Rate: rate, Flow: -expense, Balance: balance})
		}
		if balance < DepletionEpsilon {
			break
		}
	}
	return years
}

// YearsLasted returns how many years balance survives a constant annual expense
// taken after growth at rate. The year in which the balance is exhausted is
// counted. Zero means the starting balance was not positive; MaxSimulationYears
// means the balance never depleted within the horizon.
func YearsLasted(balance, expense, rate float64) int {
	return deplete(balance, expense, rate, nil)
}

// DepletionSeries returns the closing balance of each year walked by YearsLasted.
// Its length always equals YearsLasted for the same inputs.
func DepletionSeries(balance, expense, rate float64) []YearStep {
	var steps []YearStep
	deplete(balance, expense, rate, func(s YearStep) {
		steps = append(steps, s)
	})
	return steps
}
