package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/introscore/internal/scoring"
)

type evaluateReq struct {
	Transcript      string   `json:"transcript" validate:"required"`
	DurationSeconds *float64 `json:"duration_seconds" validate:"omitempty,gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestError maps validator failures to the messages clients already know.
func requestError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch {
	case fe.Field() == "transcript" && fe.Tag() == "required":
		return scoring.ErrEmptyTranscript.Error()
	case fe.Tag() == "gte":
		return fe.Field() + " must be >= " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

// POST /api/v2/evaluate
func EvaluateHandler(ev *scoring.Evaluator, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			writeDetail(w, http.StatusBadRequest, requestError(err))
			return
		}
		txt, err := scoring.Validate(req.Transcript)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := ev.Evaluate(r.Context(), txt, req.DurationSeconds)
		if err != nil {
			log.WithError(err).Warn("evaluation aborted")
			writeDetail(w, http.StatusServiceUnavailable, "evaluation aborted: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
