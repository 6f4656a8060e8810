package http

import (
	"encoding/json"
	"net/http"

	"github.com/schoolpilot/grade-service/internal/grading"
)

// courseReq is the common payload shape: a course snapshot the engine
// can evaluate. Field names match the original wire format.
type courseReq struct {
	Categories []grading.Category    `json:"categories"`
	Grades     []grading.GradeRecord `json:"grades"`
	Policies   *grading.Policies     `json:"policies"`
}

func (cr courseReq) calculator() *grading.Calculator {
	return grading.NewCalculator(cr.Categories, cr.Grades, cr.Policies)
}

// POST /grades/calculate
func CalculateGradesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req courseReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if len(req.Categories) == 0 {
			writeError(w, http.StatusBadRequest, "Missing categories")
			return
		}
		writeJSON(w, http.StatusOK, req.calculator().Calculate())
	}
}

type requiredScoreReq struct {
	courseReq
	Target   *float64 `json:"target"`
	Category *string  `json:"category"`
	MaxScore *float64 `json:"max_score"`
}

// POST /grades/required
func RequiredScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requiredScoreReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		// Presence checks only: an empty category name still reaches the
		// engine, which reports it as missing weight data.
		if len(req.Categories) == 0 || req.Target == nil || req.Category == nil {
			writeError(w, http.StatusBadRequest, "Missing categories, target, or category")
			return
		}
		maxScore := 100.0
		if req.MaxScore != nil {
			maxScore = *req.MaxScore
		}
		result := req.calculator().RequiredScoreFor(*req.Target, *req.Category, maxScore)
		writeJSON(w, http.StatusOK, result)
	}
}

type whatIfReq struct {
	courseReq
	Hypotheticals []grading.GradeRecord `json:"hypotheticals"`
}

// POST /grades/whatif
func WhatIfHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req whatIfReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if len(req.Categories) == 0 || req.Hypotheticals == nil {
			writeError(w, http.StatusBadRequest, "Missing categories or hypotheticals")
			return
		}
		writeJSON(w, http.StatusOK, req.calculator().WhatIf(req.Hypotheticals))
	}
}
