package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	api "github.com/mind-engage/introscore/internal/api/http"
	"github.com/mind-engage/introscore/internal/logging"
	"github.com/mind-engage/introscore/internal/nlp"
	"github.com/mind-engage/introscore/internal/rubric"
	"github.com/mind-engage/introscore/internal/scoring"
	"github.com/mind-engage/introscore/internal/storage"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scoring API",
		Long: `Run the HTTP scoring API.

Endpoints:
  POST /api/v2/evaluate        score a transcript
  GET  /api/v2/health          service status
  POST /api/v1/score           weighted rubric scoring (needs a rubric in RUBRIC_DIR)
  GET  /api/v1/rubric/         active rubric
  PUT  /api/v1/rubric/{file}   replace rubric.json, rubric.yaml or rubric.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.config()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			log := logging.New(cfg.LogLevel)

			prov := nlp.NewProvider(nlpConfig(cfg), log)
			ev := newEvaluator(cfg, prov, log)

			bs, err := storage.NewFSStore(cfg.RubricDir)
			if err != nil {
				return err
			}
			rubrics := rubric.NewProvider(rubric.NewLoader(bs))
			if _, err := rubrics.Reload(); err != nil {
				log.WithError(err).Warn("legacy rubric not loaded; /api/v1/score will return 503")
			}
			var embedder scoring.Embedder
			if prov.HasEmbedder() {
				embedder = prov
			}

			srv := &http.Server{
				Addr: cfg.HTTPAddr,
				Handler: api.NewRouter(api.Deps{
					Evaluator:      ev,
					Rubrics:        rubrics,
					RubricScorer:   rubric.NewScorer(embedder, log),
					RubricStore:    bs,
					Log:            log,
					CORSOrigins:    cfg.CORSOrigins(),
					RequestTimeout: cfg.RequestTimeout,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			log.WithFields(logrus.Fields{
				"addr":     cfg.HTTPAddr,
				"mode":     cfg.Mode,
				"semantic": cfg.EnableSemantic,
				"max":      ev.MaxTotal(),
			}).Info("listening")

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}
