package scoring

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scorer computes one metric of the report.
type Scorer interface {
	ID() string
	Name() string
	Max() float64
	Score(ctx context.Context, t *Transcript) MetricScore
}

func metric(s Scorer, points float64, details any) MetricScore {
	ceiling := s.Max()
	if points < 0 {
		points = 0
	}
	if points > ceiling {
		points = ceiling
	}
	return MetricScore{
		ID:       s.ID(),
		Name:     s.Name(),
		RawScore: points,
		MaxScore: ceiling,
		Details:  details,
		Feedback: Feedback(details),
	}
}

const MinWords = 10

var (
	ErrEmptyTranscript    = errors.New("Transcript is empty.")
	ErrTranscriptTooShort = errors.New("Transcript too short for meaningful scoring (>=10 words required).")
)

// Validate trims text and rejects empty or too-short transcripts.
func Validate(text string) (string, error) {
	txt := strings.TrimSpace(text)
	if txt == "" {
		return "", ErrEmptyTranscript
	}
	if len(strings.Fields(txt)) < MinWords {
		return "", ErrTranscriptTooShort
	}
	return txt, nil
}

const (
	versionFull = "2.1.1"
	versionLite = "2.1.1-lite"
)

// Evaluator options

type Option func(*config)

type config struct {
	Concepts  ConceptTable
	Grammar   GrammarChecker
	Sentiment SentimentAnalyzer
	Coverage  CoverageScorer
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

func WithConcepts(t ConceptTable) Option       { return func(c *config) { c.Concepts = t } }
func WithGrammar(g GrammarChecker) Option      { return func(c *config) { c.Grammar = g } }
func WithSentiment(s SentimentAnalyzer) Option { return func(c *config) { c.Sentiment = s } }
func WithCoverage(s CoverageScorer) Option     { return func(c *config) { c.Coverage = s } }
func WithLogger(l logrus.FieldLogger) Option   { return func(c *config) { c.Logger = l } }
func WithClock(now func() time.Time) Option    { return func(c *config) { c.Now = now } }

// Evaluator runs every scorer over a transcript and assembles the report.
// It holds no per-request state and is safe for concurrent use.
type Evaluator struct {
	scorers  []Scorer
	coverage CoverageScorer
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewEvaluator installs the built-in scorers in presentation order. Without
// WithCoverage the semantic metric is disabled.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := &config{
		Concepts: DefaultConcepts,
		Coverage: DisabledCoverage{},
		Logger:   logrus.StandardLogger(),
		Now:      time.Now,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.Coverage == nil {
		cfg.Coverage = DisabledCoverage{}
	}
	return &Evaluator{
		scorers: []Scorer{
			salutationScorer{},
			keywordScorer{table: cfg.Concepts},
			flowScorer{table: cfg.Concepts},
			speechRateScorer{},
			grammarScorer{checker: cfg.Grammar, log: cfg.Logger},
			vocabularyScorer{},
			clarityScorer{},
			engagementScorer{analyzer: cfg.Sentiment},
		},
		coverage: cfg.Coverage,
		log:      cfg.Logger,
		now:      cfg.Now,
	}
}

// MaxTotal is 110 with semantic coverage and 100 without.
func (e *Evaluator) MaxTotal() float64 {
	total := 0.0
	for _, s := range e.scorers {
		total += s.Max()
	}
	if e.coverage.Enabled() {
		total += e.coverage.Max()
	}
	return total
}

// Evaluate scores an already validated transcript. Scorers run concurrently;
// none of them fails, so the only error is a cancelled context.
func (e *Evaluator) Evaluate(ctx context.Context, text string, durationSeconds *float64) (*EvaluationResponse, error) {
	start := e.now()
	t := NewTranscript(text, durationSeconds)

	scorers := append(e.scorers[:len(e.scorers):len(e.scorers)], e.coverage)
	metrics := make([]MetricScore, len(scorers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range scorers {
		g.Go(func() error {
			metrics[i] = s.Score(gctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0.0
	var wpm *float64
	for _, m := range metrics {
		total += m.RawScore
		if d, ok := m.Details.(SpeechRateDetails); ok {
			wpm = d.WPM
		}
	}

	resp := &EvaluationResponse{
		TotalScore:        round(total, 2),
		MaxTotal:          e.MaxTotal(),
		WordCount:         len(t.Words),
		SentenceCount:     len(t.Sentences),
		DurationSeconds:   durationSeconds,
		WPM:               wpm,
		Metrics:           metrics,
		Extracted:         Extract(text),
		TranscriptPreview: Preview(text),
		Version:           versionLite,
		Notes:             "Semantic disabled",
	}
	if e.coverage.Enabled() {
		resp.Version = versionFull
		resp.Notes = "Full metric set"
	}
	resp.PerformanceMS = e.now().Sub(start).Milliseconds()

	e.log.WithFields(logrus.Fields{
		"total_score": resp.TotalScore,
		"max_total":   resp.MaxTotal,
		"word_count":  resp.WordCount,
		"elapsed_ms":  resp.PerformanceMS,
	}).Info("transcript evaluated")
	return resp, nil
}
