package scoring

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// Embedder turns texts into sentence embeddings, one vector per text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// CoverageScorer is the semantic coverage metric. Enabled reports whether it
// contributes to the maximum total.
type CoverageScorer interface {
	Scorer
	Enabled() bool
}

// ConceptAnchors describe the content a good introduction covers.
var ConceptAnchors = []string{
	"A clear greeting",
	"States name and class or educational level",
	"Mentions school",
	"Shares family or personal background",
	"Includes hobby or interest",
	"Mentions aspiration or goal",
	"Provides unique or fun fact",
	"Polite closing thanking audience",
}

type CoverageDetails struct {
	AverageSimilarity      *float64  `json:"average_similarity"`
	IndividualSimilarities []float64 `json:"individual_similarities"`
	Anchors                []string  `json:"anchors"`
	Band                   string    `json:"band"`
	Score                  float64   `json:"score"`
	Max                    float64   `json:"max"`
	Note                   string    `json:"note,omitempty"`
}

const coverageMax = 10

// Cosine similarity with a small epsilon so zero vectors give 0.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + 1e-9)
}

func coverageBand(avg float64) (float64, string) {
	switch {
	case avg >= 0.80:
		return 10, "≥0.80"
	case avg >= 0.70:
		return 8, "0.70–0.79"
	case avg >= 0.60:
		return 6, "0.60–0.69"
	case avg >= 0.50:
		return 4, "0.50–0.59"
	default:
		return 2, "<0.50"
	}
}

// CoverageFromSimilarities averages per-anchor similarities and bands them.
func CoverageFromSimilarities(sims []float64) CoverageDetails {
	d := CoverageDetails{IndividualSimilarities: make([]float64, 0, len(sims)), Anchors: ConceptAnchors, Max: coverageMax}
	sum := 0.0
	for _, s := range sims {
		sum += s
		d.IndividualSimilarities = append(d.IndividualSimilarities, round(s, 3))
	}
	avg := 0.0
	if len(sims) > 0 {
		avg = sum / float64(len(sims))
	}
	d.Score, d.Band = coverageBand(avg)
	rounded := round(avg, 3)
	d.AverageSimilarity = &rounded
	return d
}

// SemanticCoverage compares the transcript embedding with each anchor.
type SemanticCoverage struct {
	embedder Embedder
	log      logrus.FieldLogger
}

func NewSemanticCoverage(e Embedder, log logrus.FieldLogger) *SemanticCoverage {
	return &SemanticCoverage{embedder: e, log: log}
}

func (*SemanticCoverage) ID() string    { return "concept" }
func (*SemanticCoverage) Name() string  { return "Conceptual Coverage" }
func (*SemanticCoverage) Max() float64  { return coverageMax }
func (*SemanticCoverage) Enabled() bool { return true }

func (s *SemanticCoverage) Score(ctx context.Context, t *Transcript) MetricScore {
	d, err := s.measure(ctx, t.Text)
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).Warn("semantic coverage unavailable")
		}
		d = CoverageDetails{
			IndividualSimilarities: []float64{},
			Anchors:                ConceptAnchors,
			Band:                   "unavailable",
			Max:                    coverageMax,
			Note:                   "Embedding service unavailable: " + err.Error(),
		}
	}
	return metric(s, d.Score, d)
}

func (s *SemanticCoverage) measure(ctx context.Context, text string) (CoverageDetails, error) {
	if s.embedder == nil {
		return CoverageDetails{}, errors.New("no embedder configured")
	}
	texts := append([]string{text}, ConceptAnchors...)
	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return CoverageDetails{}, err
	}
	if len(vecs) != len(texts) {
		return CoverageDetails{}, errors.New("embedding count mismatch")
	}
	sims := make([]float64, 0, len(ConceptAnchors))
	for _, v := range vecs[1:] {
		sims = append(sims, Cosine(vecs[0], v))
	}
	return CoverageFromSimilarities(sims), nil
}

// DisabledCoverage stands in when semantic scoring is switched off.
type DisabledCoverage struct{}

func (DisabledCoverage) ID() string    { return "concept" }
func (DisabledCoverage) Name() string  { return "Conceptual Coverage" }
func (DisabledCoverage) Max() float64  { return coverageMax }
func (DisabledCoverage) Enabled() bool { return false }

func (s DisabledCoverage) Score(context.Context, *Transcript) MetricScore {
	d := CoverageDetails{
		IndividualSimilarities: []float64{},
		Anchors:                []string{},
		Band:                   "disabled",
		Max:                    coverageMax,
		Note:                   "Semantic metric disabled",
	}
	return metric(s, 0, d)
}
