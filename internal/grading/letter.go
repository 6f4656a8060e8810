package grading

// letterBands is checked in descending order; the first band whose lower
// bound the percentage meets wins.
var letterBands = []struct {
	min    float64
	letter string
}{
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// LetterGrade converts a 0-100 percentage to a letter grade on the
// standard US scale with inclusive lower bounds.
func LetterGrade(pct float64) string {
	for _, b := range letterBands {
		if pct >= b.min {
			return b.letter
		}
	}
	return "F"
}
