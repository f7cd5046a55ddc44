package scoring

import (
	"context"
	"strings"
)

// FillerWords are counted with word boundaries against the lowercased text.
var FillerWords = []string{
	"um", "uh", "like", "you know", "so", "actually", "basically",
	"right", "i mean", "well", "kinda", "sort of", "okay", "hmm", "ah",
}

type ClarityDetails struct {
	FillerCount int     `json:"filler_count"`
	RatePercent float64 `json:"rate_percent"`
	Band        string  `json:"band"`
	Score       float64 `json:"score"`
	Max         float64 `json:"max"`
}

// FillerRate counts filler occurrences in text per 100 of wordCount words.
func FillerRate(text string, wordCount int) (int, float64) {
	low := strings.ToLower(text)
	n := 0
	for _, fw := range FillerWords {
		n += countWord(low, fw, 0)
	}
	if wordCount == 0 {
		return n, 0
	}
	return n, float64(n) / float64(wordCount) * 100
}

// Clarity scores the filler rate; fewer fillers score higher.
func Clarity(text string, wordCount int) ClarityDetails {
	n, rate := FillerRate(text, wordCount)
	score, band := fillerBand(rate)
	return ClarityDetails{FillerCount: n, RatePercent: round(rate, 2), Band: band, Score: score, Max: 15}
}

func fillerBand(rate float64) (float64, string) {
	switch {
	case rate <= 3:
		return 15, "0–3"
	case rate <= 6:
		return 12, "4–6"
	case rate <= 9:
		return 9, "7–9"
	case rate <= 12:
		return 6, "10–12"
	default:
		return 3, "13+"
	}
}

type clarityScorer struct{}

func (clarityScorer) ID() string   { return "clarity" }
func (clarityScorer) Name() string { return "Clarity (Filler Rate)" }
func (clarityScorer) Max() float64 { return 15 }

func (s clarityScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := Clarity(t.Text, len(t.Words))
	return metric(s, d.Score, d)
}
