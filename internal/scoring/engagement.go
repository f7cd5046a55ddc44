package scoring

import "context"

// Polarity is a lexicon analyzer's proportion of positive, negative and
// neutral intensity plus a normalized compound score.
type Polarity struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// SentimentAnalyzer scores the polarity of free text.
type SentimentAnalyzer interface {
	Polarity(text string) Polarity
}

type EngagementDetails struct {
	PosProbability float64 `json:"pos_probability"`
	Band           string  `json:"band"`
	Score          float64 `json:"score"`
	Max            float64 `json:"max"`
}

// Engagement bands the positive share of sentiment.
func Engagement(p Polarity) EngagementDetails {
	score, band := sentimentBand(p.Positive)
	return EngagementDetails{PosProbability: round(p.Positive, 3), Band: band, Score: score, Max: 15}
}

func sentimentBand(pos float64) (float64, string) {
	switch {
	case pos >= 0.9:
		return 15, ">=0.9"
	case pos >= 0.7:
		return 12, "0.7–0.89"
	case pos >= 0.5:
		return 9, "0.5–0.69"
	case pos >= 0.3:
		return 6, "0.3–0.49"
	default:
		return 3, "<0.3"
	}
}

type engagementScorer struct{ analyzer SentimentAnalyzer }

func (engagementScorer) ID() string   { return "engagement" }
func (engagementScorer) Name() string { return "Engagement (Sentiment)" }
func (engagementScorer) Max() float64 { return 15 }

func (s engagementScorer) Score(_ context.Context, t *Transcript) MetricScore {
	var p Polarity
	if s.analyzer != nil {
		p = s.analyzer.Polarity(t.Text)
	}
	d := Engagement(p)
	return metric(s, d.Score, d)
}
