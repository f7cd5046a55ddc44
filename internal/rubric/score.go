package rubric

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/introscore/internal/scoring"
)

// KeywordMatch splits keywords into those found in the normalized transcript
// on word boundaries and those missing. Both lists keep the caller's casing.
func KeywordMatch(transcript string, keywords []string) (found, missing []string) {
	norm := scoring.Normalize(transcript)
	found, missing = []string{}, []string{}
	for _, kw := range keywords {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		if re.MatchString(norm) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return found, missing
}

// KeywordScore is the found share, 1 when the criterion has no keywords.
func KeywordScore(found, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(found) / float64(total)
}

// LengthScore is 1 inside the [min,max] window and falls to 60% of the
// ratio outside it. A zero or missing bound is not enforced.
func LengthScore(wordCount int, minWords, maxWords *int) float64 {
	lo, hi := deref(minWords), deref(maxWords)
	switch {
	case lo > 0 && wordCount < lo:
		return math.Min(1, float64(wordCount)/float64(lo)*0.6)
	case hi > 0 && wordCount > hi:
		return math.Min(1, float64(hi)/float64(wordCount)*0.6)
	}
	return 1
}

func Combine(keyword, semantic, length float64, cfg ScoringConfig) float64 {
	return cfg.KeywordWeight*keyword + cfg.SemanticWeight*semantic + cfg.LengthWeight*length
}

func AlignmentBand(semantic float64) string {
	switch {
	case semantic >= 0.8:
		return "strong"
	case semantic >= 0.6:
		return "moderate"
	default:
		return "low"
	}
}

func Feedback(found, missing []string, semantic float64, minWords, maxWords *int, wordCount int) string {
	var parts []string
	if len(found) > 0 {
		parts = append(parts, fmt.Sprintf("Found: %s.", strings.Join(found, ", ")))
	}
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Missing: %s.", strings.Join(missing, ", ")))
	}
	switch AlignmentBand(semantic) {
	case "strong":
		parts = append(parts, "Strong alignment.")
	case "moderate":
		parts = append(parts, "Moderate alignment; consider refining phrasing.")
	default:
		parts = append(parts, "Low alignment; expand or clarify content.")
	}
	if lo := deref(minWords); lo > 0 && wordCount < lo {
		parts = append(parts, fmt.Sprintf("Below minimum (%d/%d). Add detail.", wordCount, lo))
	}
	if hi := deref(maxWords); hi > 0 && wordCount > hi {
		parts = append(parts, fmt.Sprintf("Above maximum (%d/%d). Tighten wording.", wordCount, hi))
	}
	return strings.Join(parts, " ")
}

// Scorer runs a rubric over a transcript. The embedder is optional; without
// one every semantic score is 0.
type Scorer struct {
	embedder scoring.Embedder
	log      logrus.FieldLogger
}

func NewScorer(e scoring.Embedder, log logrus.FieldLogger) *Scorer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scorer{embedder: e, log: log}
}

// Score returns weighted results per enabled criterion; the overall score
// is the weighted sum over the active weight, as a percentage.
func (s *Scorer) Score(ctx context.Context, transcript string, r *Rubric) ScoreResponse {
	wordCount := len(strings.Fields(transcript))
	active := make([]Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		if c.IsEnabled() {
			active = append(active, c)
		}
	}
	sims := s.similarities(ctx, transcript, active)

	out := ScoreResponse{WordCount: wordCount, Criteria: make([]CriterionScore, 0, len(active))}
	var totalWeighted, activeWeight float64
	for i, c := range active {
		found, missing := KeywordMatch(transcript, c.Keywords)
		k := KeywordScore(len(found), len(c.Keywords))
		sem := sims[i]
		l := LengthScore(wordCount, c.MinWords, c.MaxWords)
		combined := Combine(k, sem, l, c.Blend())
		weighted := combined * c.Weight
		out.Criteria = append(out.Criteria, CriterionScore{
			ID:              c.ID,
			Name:            c.Name,
			Weight:          c.Weight,
			KeywordScore:    round3(k),
			SemanticScore:   round3(sem),
			LengthScore:     round3(l),
			CombinedScore:   round3(combined),
			WeightedScore:   round3(weighted),
			KeywordsFound:   found,
			KeywordsMissing: missing,
			Feedback:        Feedback(found, missing, sem, c.MinWords, c.MaxWords, wordCount),
			AlignmentBand:   AlignmentBand(sem),
		})
		totalWeighted += weighted
		activeWeight += c.Weight
	}
	if activeWeight > 0 {
		out.OverallScore = math.Round(totalWeighted/activeWeight*100*100) / 100
	}
	out.TranscriptPreview = scoring.Preview(transcript)
	return out
}

// similarities embeds the transcript with every description in one call.
func (s *Scorer) similarities(ctx context.Context, transcript string, cs []Criterion) []float64 {
	sims := make([]float64, len(cs))
	if s.embedder == nil || len(cs) == 0 {
		return sims
	}
	texts := make([]string, 0, len(cs)+1)
	texts = append(texts, transcript)
	for _, c := range cs {
		texts = append(texts, c.Description)
	}
	vecs, err := s.embedder.Embed(ctx, texts)
	if err == nil && len(vecs) != len(texts) {
		err = fmt.Errorf("got %d embeddings for %d texts", len(vecs), len(texts))
	}
	if err != nil {
		s.log.WithError(err).Warn("rubric semantic scoring unavailable")
		return sims
	}
	for i := range cs {
		sims[i] = scoring.Cosine(vecs[0], vecs[i+1])
	}
	return sims
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func round3(v float64) float64 { return math.RoundToEven(v*1000) / 1000 }
