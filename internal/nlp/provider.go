// Package nlp owns the process-wide language resources: the grammar checker,
// the sentiment analyzer and the sentence embedder. Each one is built the
// first time it is asked for and shared read-only afterwards.
package nlp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/introscore/internal/nlp/embedding"
	"github.com/mind-engage/introscore/internal/nlp/languagetool"
	"github.com/mind-engage/introscore/internal/nlp/sentiment"
	"github.com/mind-engage/introscore/internal/scoring"
)

// ErrNoEmbedder is returned by Embed when no embedding service is configured.
var ErrNoEmbedder = errors.New("nlp: embedding service not configured")

type Config struct {
	LanguageToolURL string
	Language        string
	EmbeddingURL    string
	EmbeddingModel  string
	EmbeddingAPIKey string
	Timeout         time.Duration
}

type Provider struct {
	cfg Config
	log logrus.FieldLogger

	grammarOnce sync.Once
	grammar     *languagetool.Client

	sentimentOnce sync.Once
	sentiment     *sentiment.Analyzer

	embedOnce sync.Once
	embedder  *embedding.Client
}

func NewProvider(cfg Config, log logrus.FieldLogger) *Provider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Provider{cfg: cfg, log: log}
}

func (p *Provider) grammarClient() *languagetool.Client {
	p.grammarOnce.Do(func() {
		if p.cfg.LanguageToolURL == "" {
			return
		}
		p.grammar = languagetool.New(languagetool.Config{
			BaseURL:  p.cfg.LanguageToolURL,
			Language: p.cfg.Language,
			Timeout:  p.cfg.Timeout,
		})
		p.log.WithField("url", p.cfg.LanguageToolURL).Info("grammar checker ready")
	})
	return p.grammar
}

// Check satisfies scoring.GrammarChecker.
func (p *Provider) Check(ctx context.Context, text string) ([]scoring.GrammarIssue, error) {
	c := p.grammarClient()
	if c == nil {
		return nil, scoring.ErrGrammarUnavailable
	}
	return c.Check(ctx, text)
}

func (p *Provider) analyzer() *sentiment.Analyzer {
	p.sentimentOnce.Do(func() {
		p.sentiment = sentiment.New()
		p.log.Info("sentiment analyzer ready")
	})
	return p.sentiment
}

// Polarity satisfies scoring.SentimentAnalyzer.
func (p *Provider) Polarity(text string) scoring.Polarity {
	return p.analyzer().Polarity(text)
}

func (p *Provider) embeddingClient() *embedding.Client {
	p.embedOnce.Do(func() {
		if p.cfg.EmbeddingURL == "" {
			return
		}
		p.embedder = embedding.New(embedding.Config{
			BaseURL: p.cfg.EmbeddingURL,
			Model:   p.cfg.EmbeddingModel,
			APIKey:  p.cfg.EmbeddingAPIKey,
			Timeout: p.cfg.Timeout,
		})
		p.log.WithFields(logrus.Fields{"url": p.cfg.EmbeddingURL, "model": p.cfg.EmbeddingModel}).Info("embedder ready")
	})
	return p.embedder
}

// Embed satisfies scoring.Embedder.
func (p *Provider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	c := p.embeddingClient()
	if c == nil {
		return nil, ErrNoEmbedder
	}
	return c.Embed(ctx, texts)
}

// HasEmbedder reports whether an embedding service is configured.
func (p *Provider) HasEmbedder() bool { return p.cfg.EmbeddingURL != "" }

var (
	_ scoring.GrammarChecker    = (*Provider)(nil)
	_ scoring.SentimentAnalyzer = (*Provider)(nil)
	_ scoring.Embedder          = (*Provider)(nil)
)
