package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/introscore/internal/rubric"
	"github.com/mind-engage/introscore/internal/scoring"
	"github.com/mind-engage/introscore/internal/storage"
)

type Deps struct {
	Evaluator    *scoring.Evaluator
	Rubrics      *rubric.Provider
	RubricScorer *rubric.Scorer
	RubricStore  storage.BlobStore
	Log          logrus.FieldLogger

	CORSOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v2", func(v2 chi.Router) {
		v2.Get("/health", HealthHandler())
		v2.Post("/evaluate", EvaluateHandler(d.Evaluator, d.Log))
	})

	if d.Rubrics != nil && d.RubricScorer != nil {
		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Post("/score", LegacyScoreHandler(d.Rubrics, d.RubricScorer))
			if d.RubricStore != nil {
				v1.Route("/rubric", func(rr chi.Router) {
					MountRubric(rr, d.RubricStore, d.Rubrics, d.Log)
				})
			}
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Evaluator == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})
	return r
}
