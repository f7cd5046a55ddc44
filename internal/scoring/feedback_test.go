package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedback(t *testing.T) {
	cases := []struct {
		name    string
		details any
		want    string
	}{
		{"no greeting", SalutationDetails{Level: "none"}, "No greeting detected."},
		{"greeting", SalutationDetails{Level: "excellent"}, "Greeting level: Excellent."},
		{"keywords complete", KeywordDetails{}, "All key elements present."},
		{"keywords missing", KeywordDetails{MustMissing: []string{"age"}, GoodMissing: []string{"goal", "dream"}},
			"Missing must-have: age. Could add: goal, dream."},
		{"keywords good only", KeywordDetails{GoodMissing: []string{"goal"}}, "Could add: goal."},
		{"flow ok", FlowDetails{OrderFollowed: true}, "Logical order followed."},
		{"flow bad", FlowDetails{}, "Improve order: greeting → basics → additional → closing."},
		{"no duration", SpeechRateDetails{Band: "unknown"}, "Provide duration for speech rate scoring."},
		{"wpm", SpeechRateDetails{WPM: ptr(130.0), Band: "ideal"}, "WPM 130.0 classified as ideal."},
		{"wpm fraction", SpeechRateDetails{WPM: ptr(52.8), Band: "too slow"}, "WPM 52.8 classified as too slow."},
		{"grammar", GrammarDetails{Band: ">0.9", Errors: 0}, "Grammar band >0.9 with 0 errors."},
		{"ttr", VocabularyDetails{TTR: 0.857, Band: "0.7–0.89"}, "TTR 0.857 (0.7–0.89)."},
		{"filler", ClarityDetails{RatePercent: 3, Band: "0–3"}, "Filler rate 3.0% (0–3)."},
		{"sentiment", EngagementDetails{PosProbability: 0.25, Band: "<0.3"}, "Positive sentiment 0.25 (<0.3)."},
		{"coverage disabled", CoverageDetails{Band: "disabled"}, "Semantic coverage disabled."},
		{"coverage", CoverageDetails{AverageSimilarity: ptr(0.81), Band: "≥0.80"}, "Conceptual coverage 0.81 (≥0.80)."},
		{"unknown", struct{}{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Feedback(c.details))
		})
	}
}
