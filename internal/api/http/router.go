package http

import "github.com/go-chi/chi/v5"

// Mount attaches the grade API routes to the given router.
func Mount(r chi.Router) {
	r.Post("/grades/calculate", CalculateGradesHandler())
	r.Post("/grades/required", RequiredScoreHandler())
	r.Post("/grades/whatif", WhatIfHandler())
	r.Post("/prioritize/grade-aware", GradeAwarePrioritizeHandler())
}
