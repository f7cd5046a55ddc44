package scoring

import "context"

// SpeechRateDetails holds words per minute and its band. WPM is nil when no
// usable duration was supplied.
type SpeechRateDetails struct {
	WPM   *float64 `json:"wpm"`
	Band  string   `json:"band"`
	Score float64  `json:"score"`
	Max   float64  `json:"max"`
	Note  string   `json:"note,omitempty"`
}

// SpeechRate scores wordCount spoken over durationSeconds.
func SpeechRate(wordCount int, durationSeconds *float64) SpeechRateDetails {
	if durationSeconds == nil || *durationSeconds <= 0 {
		return SpeechRateDetails{Band: "unknown", Max: 10, Note: "Duration missing"}
	}
	wpm := float64(wordCount) / (*durationSeconds / 60)
	score, band := speechRateBand(wpm)
	rounded := round(wpm, 2)
	return SpeechRateDetails{WPM: &rounded, Band: band, Score: score, Max: 10}
}

// The bands are closed ranges; a rate that falls between two of them
// (160.5, 161, 140.5) lands in "too slow" along with everything below 81.
func speechRateBand(wpm float64) (float64, string) {
	switch {
	case wpm > 161:
		return 2, "too fast"
	case wpm >= 141 && wpm <= 160:
		return 6, "fast"
	case wpm >= 111 && wpm <= 140:
		return 10, "ideal"
	case wpm >= 81 && wpm <= 110:
		return 6, "slow"
	default:
		return 2, "too slow"
	}
}

type speechRateScorer struct{}

func (speechRateScorer) ID() string   { return "speech_rate" }
func (speechRateScorer) Name() string { return "Speech Rate (WPM)" }
func (speechRateScorer) Max() float64 { return 10 }

func (s speechRateScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := SpeechRate(len(t.Words), t.DurationSeconds)
	return metric(s, d.Score, d)
}
