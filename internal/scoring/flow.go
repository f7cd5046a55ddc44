package scoring

import (
	"context"
	"strings"
)

var basicDetailWords = []string{"name", "age", "class", "school"}

// FlowPositions are byte offsets into the lowercased transcript; -1 means
// the section was not found.
type FlowPositions struct {
	Salutation   int `json:"salutation"`
	BasicDetails int `json:"basic_details"`
	Additional   int `json:"additional"`
	Closing      int `json:"closing"`
}

// FlowDetails reports whether the introduction follows
// greeting → basics → additional → closing.
type FlowDetails struct {
	Positions     FlowPositions `json:"positions"`
	OrderFollowed bool          `json:"order_followed"`
	Score         float64       `json:"score"`
	Max           float64       `json:"max"`
}

// FlowOrder locates the first greeting, the first basic detail word, the
// first good-to-have concept key and the last "thank you"/"thanks". All four
// must be present and non-decreasing for full points.
func FlowOrder(table ConceptTable, text string) FlowDetails {
	low := strings.ToLower(text)
	pos := FlowPositions{
		Salutation:   firstIndex(low, allGreetings()),
		BasicDetails: firstIndex(low, basicDetailWords),
		Additional:   firstIndex(low, table.Keys(TierGoodToHave)),
		Closing:      max(strings.LastIndex(low, "thank you"), strings.LastIndex(low, "thanks")),
	}
	d := FlowDetails{Positions: pos, Max: 5}
	seq := []int{pos.Salutation, pos.BasicDetails, pos.Additional, pos.Closing}
	d.OrderFollowed = true
	for i, v := range seq {
		if v < 0 || (i > 0 && v < seq[i-1]) {
			d.OrderFollowed = false
			break
		}
	}
	if d.OrderFollowed {
		d.Score = 5
	}
	return d
}

func firstIndex(s string, candidates []string) int {
	best := -1
	for _, c := range candidates {
		if i := strings.Index(s, c); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

type flowScorer struct{ table ConceptTable }

func (flowScorer) ID() string   { return "flow" }
func (flowScorer) Name() string { return "Flow Order" }
func (flowScorer) Max() float64 { return 5 }

func (s flowScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := FlowOrder(s.table, t.Text)
	return metric(s, d.Score, d)
}
