package scoring

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// GrammarIssue is one finding from a grammar checker.
type GrammarIssue struct {
	RuleID    string
	IssueType string
	Message   string
}

// GrammarChecker is an external grammar service.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]GrammarIssue, error)
}

// ErrGrammarUnavailable is returned when no checker is configured.
var ErrGrammarUnavailable = errors.New("grammar checker not configured")

// GrammarOutcome is either a measurement (Issues) or a degraded marker with
// the reason the checker could not be used.
type GrammarOutcome struct {
	Issues   int
	Degraded bool
	Reason   string
}

// CheckGrammar calls checker and never fails: any error becomes a degraded
// outcome. Whitespace issues are not counted.
func CheckGrammar(ctx context.Context, checker GrammarChecker, text string) GrammarOutcome {
	if checker == nil {
		return GrammarOutcome{Degraded: true, Reason: ErrGrammarUnavailable.Error()}
	}
	issues, err := checker.Check(ctx, text)
	if err != nil {
		return GrammarOutcome{Degraded: true, Reason: err.Error()}
	}
	n := 0
	for _, is := range issues {
		if is.IssueType != "whitespace" {
			n++
		}
	}
	return GrammarOutcome{Issues: n}
}

// GrammarDetails is the grammar metric's diagnostic payload.
type GrammarDetails struct {
	Errors            int     `json:"errors"`
	ErrorsPer100Words float64 `json:"errors_per_100_words"`
	GrammarScoreRaw   float64 `json:"grammar_score_raw"`
	Band              string  `json:"band"`
	Score             float64 `json:"score"`
	Max               float64 `json:"max"`
	Note              string  `json:"note,omitempty"`
}

const grammarFallbackNote = "LanguageTool unavailable; default high score."

// GrammarFromOutcome turns an outcome into points. A degraded outcome gets
// the top band so an unreachable checker never penalises the speaker.
func GrammarFromOutcome(o GrammarOutcome, wordCount int) GrammarDetails {
	if o.Degraded {
		return GrammarDetails{GrammarScoreRaw: 1, Band: ">0.9", Score: 10, Max: 10, Note: grammarFallbackNote}
	}
	per100 := 0.0
	if wordCount > 0 {
		per100 = float64(o.Issues) / float64(wordCount) * 100
	}
	raw := 1 - math.Min(per100/10, 1)
	score, band := grammarBand(raw)
	return GrammarDetails{
		Errors:            o.Issues,
		ErrorsPer100Words: round(per100, 2),
		GrammarScoreRaw:   round(raw, 3),
		Band:              band,
		Score:             score,
		Max:               10,
	}
}

func grammarBand(raw float64) (float64, string) {
	switch {
	case raw > 0.9:
		return 10, ">0.9"
	case raw >= 0.7:
		return 8, "0.7–0.89"
	case raw >= 0.5:
		return 6, "0.5–0.69"
	case raw >= 0.3:
		return 4, "0.3–0.49"
	default:
		return 2, "<0.3"
	}
}

type grammarScorer struct {
	checker GrammarChecker
	log     logrus.FieldLogger
}

func (grammarScorer) ID() string   { return "grammar" }
func (grammarScorer) Name() string { return "Grammar Quality" }
func (grammarScorer) Max() float64 { return 10 }

func (s grammarScorer) Score(ctx context.Context, t *Transcript) MetricScore {
	o := CheckGrammar(ctx, s.checker, t.Text)
	if o.Degraded && s.log != nil {
		s.log.WithField("reason", o.Reason).Warn("grammar checker degraded, using fallback score")
	}
	d := GrammarFromOutcome(o, len(t.Words))
	return metric(s, d.Score, d)
}
