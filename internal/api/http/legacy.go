package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mind-engage/introscore/internal/rubric"
)

type legacyScoreReq struct {
	Transcript string `json:"transcript" validate:"required"`
}

// POST /api/v1/score
func LegacyScoreHandler(rubrics *rubric.Provider, scorer *rubric.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req legacyScoreReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		req.Transcript = strings.TrimSpace(req.Transcript)
		if err := validate.Struct(req); err != nil {
			writeDetail(w, http.StatusBadRequest, requestError(err))
			return
		}
		rb, ok := rubrics.Current()
		if !ok {
			writeDetail(w, http.StatusServiceUnavailable, "No rubric loaded. Provide rubric.json, rubric.yaml or rubric.xlsx.")
			return
		}
		writeJSON(w, http.StatusOK, scorer.Score(r.Context(), req.Transcript, rb))
	}
}
