// Package prioritize ranks upcoming work by urgency and classifies each
// course's standing against the next letter-grade boundary. The output
// is structured data for whatever surface renders the student's plan.
package prioritize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/schoolpilot/grade-service/internal/grading"
)

// Assignment is one upcoming (or overdue) piece of work as reported by
// the caller. Date is the day-of-month as a string because that is how
// the scraping clients report it; unparseable values simply contribute
// no proximity score.
type Assignment struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Course  string `json:"course"`
	Due     string `json:"due"`
	Day     string `json:"day"`
	Date    string `json:"date"`
	Overdue bool   `json:"isOverdue"`
}

// UrgencyScore rates an assignment; higher means more urgent. Overdue
// work dominates, then assessment weight, then due-date proximity.
func UrgencyScore(a Assignment) int {
	score := 0

	if a.Overdue {
		score += 1000
	}

	t := strings.ToLower(a.Type)
	switch {
	case strings.Contains(t, "assess"), strings.Contains(t, "test"), strings.Contains(t, "exam"):
		score += 100
	case strings.Contains(t, "quiz"):
		score += 50
	case strings.Contains(t, "assignment"):
		score += 25
	}

	if a.Date != "" {
		if day, err := strconv.Atoi(a.Date); err == nil {
			// Lower day numbers are sooner, so invert.
			if prox := 31 - day; prox > 0 {
				score += prox * 10
			}
		}
	}

	return score
}

// Rank merges overdue items (flagged as such) with upcoming assignments
// and orders the result by descending urgency. Ties keep input order,
// overdue items first.
func Rank(assignments, overdue []Assignment) []Assignment {
	items := make([]Assignment, 0, len(assignments)+len(overdue))
	for _, a := range overdue {
		a.Overdue = true
		items = append(items, a)
	}
	items = append(items, assignments...)

	sort.SliceStable(items, func(i, j int) bool {
		return UrgencyScore(items[i]) > UrgencyScore(items[j])
	})
	return items
}

// Boundary describes where a course overall sits relative to the letter
// boundaries that matter for prioritization.
type Boundary string

const (
	BoundaryNone  Boundary = ""
	BoundaryNearA Boundary = "near_a"  // within 3 points of an A-
	BoundaryNearB Boundary = "near_b"  // within 3 points of a B-
	BoundaryNearC Boundary = "near_c"  // within 3 points of a C-
	BoundaryRisk  Boundary = "at_risk" // below a C-
)

// BoundaryStatus classifies an overall percentage. The near-boundary
// bands are the 3-point windows just under 90, 80 and 70.
func BoundaryStatus(overall float64) Boundary {
	switch {
	case overall >= 87 && overall < 90:
		return BoundaryNearA
	case overall >= 77 && overall < 80:
		return BoundaryNearB
	case overall >= 67 && overall < 70:
		return BoundaryNearC
	case overall < 70:
		return BoundaryRisk
	default:
		return BoundaryNone
	}
}

// CourseSnapshot is the grade data for one course, in the same shape the
// grading engine consumes.
type CourseSnapshot struct {
	Categories []grading.Category    `json:"categories"`
	Grades     []grading.GradeRecord `json:"grades"`
	Policies   *grading.Policies     `json:"policies,omitempty"`
}

// CourseStanding is the computed standing for one course. Overall and
// Letter are nil when the course has no countable grades.
type CourseStanding struct {
	Overall  *float64 `json:"overall"`
	Letter   *string  `json:"letter"`
	Boundary Boundary `json:"boundary"`
}

// Summarize computes each course's overall grade and boundary status.
func Summarize(courses map[string]CourseSnapshot) map[string]CourseStanding {
	out := make(map[string]CourseStanding, len(courses))
	for name, snap := range courses {
		res := grading.NewCalculator(snap.Categories, snap.Grades, snap.Policies).Calculate()
		standing := CourseStanding{Overall: res.Overall, Letter: res.Letter}
		if res.Overall != nil {
			standing.Boundary = BoundaryStatus(*res.Overall)
		}
		out[name] = standing
	}
	return out
}
