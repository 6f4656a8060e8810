package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/schoolpilot/grade-service/internal/prioritize"
)

type prioritizeReq struct {
	Assignments []prioritize.Assignment              `json:"assignments"`
	Overdue     []prioritize.Assignment              `json:"overdue"`
	Courses     map[string]prioritize.CourseSnapshot `json:"courses"`
}

type prioritizeResp struct {
	Items   []prioritize.Assignment              `json:"items"`
	Courses map[string]prioritize.CourseStanding `json:"courses"`
}

// POST /prioritize/grade-aware
func GradeAwarePrioritizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prioritizeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if len(req.Assignments) == 0 && len(req.Overdue) == 0 {
			writeError(w, http.StatusBadRequest, "No assignments provided")
			return
		}

		sanitize(req.Assignments)
		sanitize(req.Overdue)

		writeJSON(w, http.StatusOK, prioritizeResp{
			Items:   prioritize.Rank(req.Assignments, req.Overdue),
			Courses: prioritize.Summarize(req.Courses),
		})
	}
}

const maxFieldLen = 200

func sanitize(items []prioritize.Assignment) {
	for i := range items {
		items[i].Title = capString(items[i].Title)
		items[i].Type = capString(items[i].Type)
		items[i].Course = capString(items[i].Course)
		items[i].Due = capString(items[i].Due)
	}
}

func capString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLen {
		s = s[:maxFieldLen]
	}
	return s
}
