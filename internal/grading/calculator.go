// Package grading computes course grades from categorized assignment
// scores, category weights, and per-category policies. It is pure math:
// no storage, no HTTP, no AI. Callers construct a Calculator per request
// from whatever data they hold and read the derived results.
package grading

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Category is a weighted grading bucket, e.g. {"Tests", 0.40}.
// Weights typically sum toward 1.0 but are not required to.
type Category struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// GradeRecord is one recorded (or hypothetical) assignment score.
// A record only counts toward a category whose Name matches Category
// exactly; unmatched records are ignored.
type GradeRecord struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Max      float64 `json:"max"`
}

// Policies holds optional per-category grading rules.
//
// MissingPenalty is accepted and carried for forward compatibility but is
// not applied to any computation: there is no notion of an "expected but
// absent" assignment distinct from a record simply not being present.
type Policies struct {
	DropLowest     map[string]int `json:"drop_lowest,omitempty"`
	MissingPenalty float64        `json:"missing_penalty,omitempty"`
}

// CategoryResult is the per-category slice of a calculation. Average is
// nil when the category has no countable grades. Assignments counts
// matching records before any drop-lowest is applied.
type CategoryResult struct {
	Average     *float64 `json:"average"`
	Weight      float64  `json:"weight"`
	Assignments int      `json:"assignments"`
}

// Result is the output of Calculate. Overall and Letter are nil when no
// category produced an average. WeightCoverage is the percentage of
// configured weight backed by at least one grade.
type Result struct {
	Overall        *float64                  `json:"overall"`
	Letter         *string                   `json:"letter"`
	Categories     map[string]CategoryResult `json:"categories"`
	WeightCoverage float64                   `json:"weight_coverage"`
}

// RequiredScore is the output of the required-score solver. Required is
// nil only when the target category has no usable weight.
type RequiredScore struct {
	Required    *float64 `json:"required"`
	RequiredPct *float64 `json:"required_pct"`
	Achievable  bool     `json:"achievable"`
	Explanation string   `json:"explanation"`
}

// Projection is the output of WhatIf: the real-only overall, the overall
// with hypotheticals merged in, and the delta between them.
type Projection struct {
	Current         *float64                  `json:"current"`
	Projected       *float64                  `json:"projected"`
	ProjectedLetter *string                   `json:"projected_letter"`
	Change          *float64                  `json:"change"`
	Categories      map[string]CategoryResult `json:"categories"`
}

// Calculator evaluates one course snapshot. It is a value object: build
// it fresh per request, never share or mutate it across calls.
type Calculator struct {
	names      []string // category iteration order (insertion order, deduped)
	weights    map[string]float64
	grades     []GradeRecord
	dropLowest map[string]int
	missing    float64
}

// NewCalculator builds a Calculator from caller-supplied data. Duplicate
// category names keep the last weight seen. A nil policies block means no
// drops and no penalty.
func NewCalculator(categories []Category, grades []GradeRecord, policies *Policies) *Calculator {
	c := &Calculator{
		names:   make([]string, 0, len(categories)),
		weights: make(map[string]float64, len(categories)),
		grades:  grades,
	}
	for _, cat := range categories {
		if _, seen := c.weights[cat.Name]; !seen {
			c.names = append(c.names, cat.Name)
		}
		c.weights[cat.Name] = cat.Weight
	}
	if policies != nil {
		c.dropLowest = policies.DropLowest
		c.missing = policies.MissingPenalty
	}
	return c
}

// categoryGrades returns all records for a category sorted ascending by
// percentage. Records with Max <= 0 sort as 0% so they are first in line
// for drop-lowest.
func (c *Calculator) categoryGrades(category string) []GradeRecord {
	var out []GradeRecord
	for _, g := range c.grades {
		if g.Category == category {
			out = append(out, g)
		}
	}
	sortByPercent(out)
	return out
}

func sortByPercent(records []GradeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return percent(records[i]) < percent(records[j])
	})
}

func percent(g GradeRecord) float64 {
	if g.Max > 0 {
		return g.Score / g.Max
	}
	return 0
}

// categoryAverage computes the 0-100 average for one category, merging
// in extra hypothetical records before applying drop-lowest. Returns nil
// when there are no records or the summed max is zero.
func (c *Calculator) categoryAverage(category string, extra []GradeRecord) *float64 {
	records := c.categoryGrades(category)
	if len(extra) > 0 {
		records = append(records, extra...)
		sortByPercent(records)
	}
	if len(records) == 0 {
		return nil
	}

	if n := c.dropLowest[category]; n > 0 && len(records) > n {
		records = records[n:]
	}

	var totalScore, totalMax float64
	for _, g := range records {
		totalScore += g.Score
		totalMax += g.Max
	}
	if totalMax == 0 {
		return nil
	}
	avg := (totalScore / totalMax) * 100
	return &avg
}

// Calculate computes per-category results and the weighted overall grade.
// Categories without grades are excluded from both the numerator and the
// denominator rather than counted as zero. Empty input is not an error;
// it yields an all-nil result.
func (c *Calculator) Calculate() Result {
	results := make(map[string]CategoryResult, len(c.names))
	var weightedSum, weightUsed float64

	for _, name := range c.names {
		weight := c.weights[name]
		avg := c.categoryAverage(name, nil)
		cr := CategoryResult{
			Weight:      weight,
			Assignments: len(c.categoryGrades(name)),
		}
		if avg != nil {
			cr.Average = floatPtr(round2(*avg))
			weightedSum += *avg * weight
			weightUsed += weight
		}
		results[name] = cr
	}

	res := Result{
		Categories:     results,
		WeightCoverage: round1(weightUsed * 100),
	}
	if weightUsed > 0 {
		overall := round2(weightedSum / weightUsed)
		res.Overall = &overall
		letter := LetterGrade(overall)
		res.Letter = &letter
	}
	return res
}

// RequiredScoreFor computes the minimum score out of maxScore on one
// additional assessment in the given category that lifts the overall
// grade to target, holding every other category at its current average.
func (c *Calculator) RequiredScoreFor(target float64, category string, maxScore float64) RequiredScore {
	var otherWeighted, otherWeightUsed float64
	targetWeight := c.weights[category]

	for _, name := range c.names {
		if name == category {
			continue
		}
		if avg := c.categoryAverage(name, nil); avg != nil {
			otherWeighted += *avg * c.weights[name]
			otherWeightUsed += c.weights[name]
		}
	}

	totalWeight := otherWeightUsed + targetWeight
	if totalWeight == 0 || targetWeight == 0 {
		return RequiredScore{
			Achievable:  false,
			Explanation: "Missing category weight data.",
		}
	}

	neededAvg := (target*totalWeight - otherWeighted) / targetWeight

	records := c.categoryGrades(category)
	dropN := c.dropLowest[category]

	var required float64
	if dropN > 0 && len(records)+1 > dropN {
		// The new score's own rank decides whether it gets dropped, so
		// there is no closed form. Bisect instead.
		required = solveRequiredWithDrop(records, neededAvg, maxScore, dropN)
	} else {
		var totalScore, totalMax float64
		for _, g := range records {
			totalScore += g.Score
			totalMax += g.Max
		}
		required = (neededAvg/100)*(totalMax+maxScore) - totalScore
	}

	achievable := required >= 0 && required <= maxScore

	var requiredPct *float64
	if maxScore > 0 {
		requiredPct = floatPtr(round1((required / maxScore) * 100))
	}

	var explanation string
	switch {
	case required < 0:
		explanation = fmt.Sprintf("You already exceed the target! Even a 0 keeps you above %s%%.", trimFloat(target))
	case required > maxScore:
		explanation = "You'd need more than the max. Target may not be reachable with one assessment."
		if requiredPct != nil {
			explanation = fmt.Sprintf("You'd need %s%%, which exceeds the max. Target may not be reachable with one assessment.", fmtScore(*requiredPct))
		}
	default:
		pct := 0.0
		if requiredPct != nil {
			pct = *requiredPct
		}
		explanation = fmt.Sprintf("Score at least %s/%s (%s%%) on your next %s assessment.",
			fmtScore(required), trimFloat(maxScore), fmtScore(pct), strings.ToLower(category))
	}

	return RequiredScore{
		Required:    floatPtr(round1(required)),
		RequiredPct: requiredPct,
		Achievable:  achievable,
		Explanation: explanation,
	}
}

// WhatIf projects the overall grade assuming the hypothetical records had
// been recorded. The merge is local to this call; the Calculator's real
// records are never mutated.
func (c *Calculator) WhatIf(hypotheticals []GradeRecord) Projection {
	combined := make([]GradeRecord, 0, len(c.grades)+len(hypotheticals))
	combined = append(combined, c.grades...)
	combined = append(combined, hypotheticals...)

	categories := make([]Category, 0, len(c.names))
	for _, name := range c.names {
		categories = append(categories, Category{Name: name, Weight: c.weights[name]})
	}
	projected := NewCalculator(categories, combined, &Policies{
		DropLowest:     c.dropLowest,
		MissingPenalty: c.missing,
	}).Calculate()
	current := c.Calculate()

	var change *float64
	if projected.Overall != nil && current.Overall != nil {
		change = floatPtr(round2(*projected.Overall - *current.Overall))
	}

	return Projection{
		Current:         current.Overall,
		Projected:       projected.Overall,
		ProjectedLetter: projected.Letter,
		Change:          change,
		Categories:      projected.Categories,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

func floatPtr(v float64) *float64 { return &v }

// trimFloat renders a float without trailing zeros, e.g. 80 not 80.0.
func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

// fmtScore renders a value rounded to 1 decimal with the decimal always
// shown, e.g. 88.0, the way scores read in explanations.
func fmtScore(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', 1, 64)
}
