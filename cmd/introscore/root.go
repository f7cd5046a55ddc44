package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mind-engage/introscore/internal/config"
	"github.com/mind-engage/introscore/internal/logging"
	"github.com/mind-engage/introscore/internal/nlp"
	"github.com/mind-engage/introscore/internal/scoring"
)

var version = "dev"

// options shared by every subcommand.
type rootOptions struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "introscore",
		Short: "Score spoken self-introduction transcripts",
		Long: `introscore grades a student's spoken self-introduction transcript against a
fixed communication rubric: greeting, key details, order, speech rate,
grammar, vocabulary, filler words, sentiment and (optionally) semantic
coverage.

Configuration comes from the environment (HTTP_ADDR, ENABLE_SEMANTIC,
LANGUAGETOOL_URL, EMBEDDING_URL, RUBRIC_DIR, LOG_LEVEL, ...).`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newScoreCommand(opts))
	cmd.AddCommand(newRubricCommand(opts))
	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

func (o *rootOptions) config() config.Config {
	cfg := config.FromEnv()
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg
}

func (o *rootOptions) logger(cfg config.Config, w io.Writer) *logrus.Logger {
	return logging.NewWithOutput(cfg.LogLevel, w)
}

func nlpConfig(cfg config.Config) nlp.Config {
	return nlp.Config{
		LanguageToolURL: cfg.LanguageToolURL,
		Language:        cfg.LanguageToolLanguage,
		EmbeddingURL:    cfg.EmbeddingURL,
		EmbeddingModel:  cfg.EmbeddingModel,
		EmbeddingAPIKey: cfg.EmbeddingAPIKey,
		Timeout:         cfg.NLPTimeout,
	}
}

// newEvaluator wires the shared NLP resources into the scoring engine.
// ENABLE_SEMANTIC selects real coverage; otherwise the disabled stub.
func newEvaluator(cfg config.Config, prov *nlp.Provider, log logrus.FieldLogger) *scoring.Evaluator {
	opts := []scoring.Option{
		scoring.WithGrammar(prov),
		scoring.WithSentiment(prov),
		scoring.WithLogger(log),
	}
	if cfg.EnableSemantic {
		if !prov.HasEmbedder() {
			log.Warn("ENABLE_SEMANTIC is set but EMBEDDING_URL is empty; coverage will report unavailable")
		}
		opts = append(opts, scoring.WithCoverage(scoring.NewSemanticCoverage(prov, log)))
	}
	return scoring.NewEvaluator(opts...)
}
