package scoring

import "context"

type VocabularyDetails struct {
	TTR   float64 `json:"ttr"`
	Band  string  `json:"band"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// Vocabulary bands the type-token ratio of the normalized words.
func Vocabulary(words []string) VocabularyDetails {
	ttr := TypeTokenRatio(words)
	score, band := vocabularyBand(ttr)
	return VocabularyDetails{TTR: round(ttr, 3), Band: band, Score: score, Max: 10}
}

func vocabularyBand(ttr float64) (float64, string) {
	switch {
	case ttr >= 0.9:
		return 10, "0.9–1.0"
	case ttr >= 0.7:
		return 8, "0.7–0.89"
	case ttr >= 0.5:
		return 6, "0.5–0.69"
	case ttr >= 0.3:
		return 4, "0.3–0.49"
	default:
		return 2, "0–0.29"
	}
}

type vocabularyScorer struct{}

func (vocabularyScorer) ID() string   { return "vocabulary" }
func (vocabularyScorer) Name() string { return "Vocabulary Richness (TTR)" }
func (vocabularyScorer) Max() float64 { return 10 }

func (s vocabularyScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := Vocabulary(t.Words)
	return metric(s, d.Score, d)
}
