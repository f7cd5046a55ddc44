package scoring

import (
	"context"
	"regexp"
)

// Tier separates concepts worth 4 points from those worth 2.
type Tier int

const (
	TierMustHave Tier = iota
	TierGoodToHave
)

const (
	mustHavePoints   = 4
	goodToHavePoints = 2
	keywordsMax      = 30
)

// Concept is one row of the concept table. A concept is found when any
// pattern matches the raw text or its Extractor reports a hit.
type Concept struct {
	Key       string
	Tier      Tier
	Patterns  []*regexp.Regexp
	Extractor func(text string) bool
}

// Found reports whether the concept occurs in text.
func (c Concept) Found(text string) bool {
	for _, re := range c.Patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return c.Extractor != nil && c.Extractor(text)
}

func concept(key string, tier Tier, extractor func(string) bool, patterns ...string) Concept {
	c := Concept{Key: key, Tier: tier, Extractor: extractor}
	for _, p := range patterns {
		c.Patterns = append(c.Patterns, regexp.MustCompile(`(?i)`+p))
	}
	return c
}

// ConceptTable is an ordered, read-only set of concepts.
type ConceptTable []Concept

// Keys returns the concept keys of one tier in table order.
func (t ConceptTable) Keys(tier Tier) []string {
	var out []string
	for _, c := range t {
		if c.Tier == tier {
			out = append(out, c.Key)
		}
	}
	return out
}

// DefaultConcepts is the fixed rubric: 8 must-have, 11 good-to-have.
var DefaultConcepts = ConceptTable{
	concept("name", TierMustHave, func(s string) bool { _, ok := ExtractName(s); return ok },
		`\bmy name is\s+[A-Z][a-zA-Z]+`,
		`\bmyself\s+[A-Z][a-zA-Z]+`,
		`\bi am\s+[A-Z][a-zA-Z]+\b`,
	),
	concept("age", TierMustHave, func(s string) bool { _, ok := ExtractAge(s); return ok },
		`\bI am\s+\d{1,2}\s+years?\s+old\b`,
		`\bI'm\s+\d{1,2}\s+years?\s+old\b`,
	),
	concept("class", TierMustHave, func(s string) bool { _, ok := ExtractClass(s); return ok },
		`\bclass\s+\d{1,2}\w?\b`,
		`\bstudying in class\s+\d{1,2}\w?\b`,
	),
	concept("school", TierMustHave, func(s string) bool { _, ok := ExtractSchoolClassPhrase(s); return ok },
		`\bSchool\b`,
		`\bPublic School\b`,
		`\bHigh School\b`,
		`\bAcademy\b`,
		`\bCollege\b`,
	),
	concept("family", TierMustHave, nil,
		`\bfamily\b`,
		`\bmy (mother|father|parents|sister|brother)\b`,
		`\bthere (are|is)\s+\d+\s+people in my family\b`,
	),
	concept("hobby", TierMustHave, nil,
		`\bplaying\s+\w+`,
		`\bplay\b`,
		`\bI love\b`,
		`\bI enjoy\b`,
		`\bI really enjoy\b`,
		`\bmy favorite (subject|activity)\b`,
		`\bfavorite subject\b`,
		`\btaking wickets\b`,
	),
	concept("interest", TierMustHave, nil,
		`\bI am interested in\b`,
		`\binterested in\b`,
		`\bscience\b`,
		`\bexplore the whole world\b`,
	),
	concept("like", TierMustHave, nil,
		`\bI like\b`,
		`\bI love\b`,
		`\bI enjoy\b`,
		`\bfavorite\b`,
	),

	concept("origin", TierGoodToHave, nil,
		`\bI am from\b`,
		`\bwe are from\b`,
		`\bmy hometown\b`,
	),
	concept("parents are from", TierGoodToHave, nil, `\bparents are from\b`),
	concept("ambition", TierGoodToHave, nil,
		`\bmy ambition\b`,
		`\bmy goal\b`,
		`\bmy dream\b`,
		`\bI aspire\b`,
	),
	concept("goal", TierGoodToHave, nil, `\bgoal\b`),
	concept("dream", TierGoodToHave, nil, `\bdream\b`),
	concept("achievement", TierGoodToHave, nil,
		`\bachievement\b`,
		`\bI achieved\b`,
		`\bI won\b`,
	),
	concept("strength", TierGoodToHave, nil,
		`\bmy strength\b`,
		`\bstrong in\b`,
	),
	concept("fun fact", TierGoodToHave, nil,
		`\bfun fact\b`,
		`\ba fun fact\b`,
	),
	concept("unique", TierGoodToHave, nil,
		`\bone special thing\b`,
		`\bsomething unique\b`,
	),
	concept("aspire", TierGoodToHave, nil, `\bI aspire\b`),
	concept("interesting", TierGoodToHave, nil,
		`\bit is very interesting\b`,
		`\binteresting\b`,
	),
}

// KeywordDetails is the concept matcher's output.
type KeywordDetails struct {
	MustFound   []string `json:"must_found"`
	MustMissing []string `json:"must_missing"`
	GoodFound   []string `json:"good_found"`
	GoodMissing []string `json:"good_missing"`
	Score       float64  `json:"score"`
	Max         float64  `json:"max"`
}

// KeywordPresence matches every concept against text. Found must-haves
// earn 4 points, good-to-haves 2, capped at 30.
func KeywordPresence(table ConceptTable, text string) KeywordDetails {
	d := KeywordDetails{
		MustFound:   []string{},
		MustMissing: []string{},
		GoodFound:   []string{},
		GoodMissing: []string{},
		Max:         keywordsMax,
	}
	points := 0
	for _, c := range table {
		found := c.Found(text)
		switch {
		case c.Tier == TierMustHave && found:
			d.MustFound = append(d.MustFound, c.Key)
			points += mustHavePoints
		case c.Tier == TierMustHave:
			d.MustMissing = append(d.MustMissing, c.Key)
		case found:
			d.GoodFound = append(d.GoodFound, c.Key)
			points += goodToHavePoints
		default:
			d.GoodMissing = append(d.GoodMissing, c.Key)
		}
	}
	if points > keywordsMax {
		points = keywordsMax
	}
	d.Score = float64(points)
	return d
}

type keywordScorer struct{ table ConceptTable }

func (keywordScorer) ID() string   { return "keywords" }
func (keywordScorer) Name() string { return "Keyword Presence" }
func (keywordScorer) Max() float64 { return keywordsMax }

func (s keywordScorer) Score(_ context.Context, t *Transcript) MetricScore {
	d := KeywordPresence(s.table, t.Text)
	return metric(s, d.Score, d)
}
