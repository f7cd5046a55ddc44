// Package sentiment scores text with VADER (valence aware dictionary and
// sentiment reasoner) through govader.
package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/mind-engage/introscore/internal/scoring"
)

// Analyzer is safe for concurrent use; the lexicon is read-only once loaded.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// New loads the VADER lexicon. It is not cheap, so build one per process.
func New() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (a *Analyzer) Polarity(text string) scoring.Polarity {
	s := a.sia.PolarityScores(text)
	return scoring.Polarity{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}
}

var _ scoring.SentimentAnalyzer = (*Analyzer)(nil)
