package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/introscore/internal/rubric"
	"github.com/mind-engage/introscore/internal/storage"
)

const maxRubricUpload = 4 << 20

// MountRubric serves the active rubric and accepts replacements.
func MountRubric(r chi.Router, bs storage.BlobStore, rubrics *rubric.Provider, log logrus.FieldLogger) {
	// GET /api/v1/rubric
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		rb, ok := rubrics.Current()
		if !ok {
			writeDetail(w, http.StatusNotFound, "no rubric loaded")
			return
		}
		writeJSON(w, http.StatusOK, rb)
	})

	// PUT /api/v1/rubric/{file} where file is rubric.json, rubric.yaml or
	// rubric.xlsx. A spreadsheet is converted to rubric.json as well.
	r.Put("/{file}", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "file")
		switch key {
		case rubric.JSONKey, rubric.YAMLKey, rubric.XLSXKey:
		default:
			writeDetail(w, http.StatusBadRequest, "file must be rubric.json, rubric.yaml or rubric.xlsx")
			return
		}
		if key == rubric.YAMLKey {
			// rubric.json is loaded first and would shadow the upload
			if ok, _ := bs.Exists(rubric.JSONKey); ok {
				writeDetail(w, http.StatusConflict, "rubric.json takes precedence; upload rubric.json instead")
				return
			}
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRubricUpload))
		if err != nil {
			writeDetail(w, http.StatusRequestEntityTooLarge, "read body: "+err.Error())
			return
		}
		if _, err := rubric.Parse(key, bytes.NewReader(body)); err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := bs.Put(key, bytes.NewReader(body)); err != nil {
			writeDetail(w, http.StatusInternalServerError, "store error: "+err.Error())
			return
		}
		if key == rubric.XLSXKey {
			if _, err := rubric.Convert(bs); err != nil {
				writeDetail(w, http.StatusInternalServerError, "convert: "+err.Error())
				return
			}
		}
		rb, err := rubrics.Reload()
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "reload: "+err.Error())
			return
		}
		log.WithFields(logrus.Fields{"file": key, "criteria": len(rb.Criteria)}).Info("rubric replaced")
		writeJSON(w, http.StatusOK, rb)
	})
}
