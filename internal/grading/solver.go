package grading

// solveRequiredWithDrop finds the score X on a new assessment (out of
// maxScore) such that the category average, after merging X with the
// existing records and dropping the lowest dropN, reaches neededAvg.
//
// The category average is monotonically non-decreasing in X, so a fixed
// 100-iteration bisection over [0, maxScore] converges well past the
// 0.01 precision the callers round to.
func solveRequiredWithDrop(records []GradeRecord, neededAvg, maxScore float64, dropN int) float64 {
	category := ""
	if len(records) > 0 {
		category = records[0].Category
	}

	lo, hi := 0.0, maxScore
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		candidate := GradeRecord{Category: category, Score: mid, Max: maxScore}

		merged := make([]GradeRecord, 0, len(records)+1)
		merged = append(merged, records...)
		merged = append(merged, candidate)
		sortByPercent(merged)

		var kept []GradeRecord
		if dropN < len(merged) {
			kept = merged[dropN:]
		}

		var totalScore, totalMax float64
		for _, g := range kept {
			totalScore += g.Score
			totalMax += g.Max
		}
		avg := 0.0
		if totalMax > 0 {
			avg = (totalScore / totalMax) * 100
		}

		if avg < neededAvg {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
