package http

import "net/http"

const APIVersion = "2.1.0"

// GET /api/v2/health
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": APIVersion})
	}
}
