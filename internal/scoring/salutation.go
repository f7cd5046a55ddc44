package scoring

import (
	"context"
	"strings"
)

// Greeting phrases by tier. Excellent and good match as substrings; normal
// needs word boundaries so "hi" does not fire inside "this".
var (
	excellentGreetings = []string{"i am excited", "feeling great", "thrilled", "excited to introduce", "pleased to"}
	goodGreetings      = []string{"good morning", "good afternoon", "good evening", "good day", "hello everyone"}
	normalGreetings    = []string{"hi", "hello"}
)

func allGreetings() []string {
	out := make([]string, 0, len(excellentGreetings)+len(goodGreetings)+len(normalGreetings))
	out = append(out, excellentGreetings...)
	out = append(out, goodGreetings...)
	return append(out, normalGreetings...)
}

// SalutationDetails reports the greeting tier found.
type SalutationDetails struct {
	Level   string   `json:"level"`
	Matched []string `json:"matched"`
	Score   float64  `json:"score"`
	Max     float64  `json:"max"`
}

var salutationPoints = map[string]float64{"none": 0, "normal": 2, "good": 4, "excellent": 5}

// DetectSalutation checks tiers in order excellent, good, normal and stops
// at the first hit.
func DetectSalutation(text string) SalutationDetails {
	low := strings.ToLower(text)
	d := SalutationDetails{Level: "none", Matched: []string{}, Max: 5}
	if p, ok := firstSubstring(low, excellentGreetings); ok {
		d.Level, d.Matched = "excellent", []string{p}
	} else if p, ok := firstSubstring(low, goodGreetings); ok {
		d.Level, d.Matched = "good", []string{p}
	} else {
		for _, p := range normalGreetings {
			if containsWord(low, p) {
				d.Level, d.Matched = "normal", []string{p}
				break
			}
		}
	}
	d.Score = salutationPoints[d.Level]
	return d
}

func firstSubstring(s string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return p, true
		}
	}
	return "", false
}

type salutationScorer struct{}

func (salutationScorer) ID() string   { return "salutation" }
func (salutationScorer) Name() string { return "Salutation Level" }
func (salutationScorer) Max() float64 { return 5 }

func (s salutationScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := DetectSalutation(t.Text)
	return metric(s, d.Score, d)
}
