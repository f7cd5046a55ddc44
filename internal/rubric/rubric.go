// Package rubric is the weight-based rubric pipeline: every enabled
// criterion blends keyword coverage, semantic alignment with its
// description and a length window into one weighted score.
package rubric

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ScoringConfig struct {
	KeywordWeight  float64 `json:"keyword_weight" yaml:"keyword_weight" validate:"gte=0,lte=1"`
	SemanticWeight float64 `json:"semantic_weight" yaml:"semantic_weight" validate:"gte=0,lte=1"`
	LengthWeight   float64 `json:"length_weight" yaml:"length_weight" validate:"gte=0,lte=1"`
}

// DefaultScoringConfig is used when a criterion does not set its own blend.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{KeywordWeight: 0.4, SemanticWeight: 0.4, LengthWeight: 0.2}
}

type Criterion struct {
	ID            string         `json:"id" yaml:"id" validate:"required"`
	Name          string         `json:"name" yaml:"name" validate:"required"`
	Description   string         `json:"description" yaml:"description"`
	Keywords      []string       `json:"keywords" yaml:"keywords"`
	Weight        float64        `json:"weight" yaml:"weight" validate:"gte=0"`
	MinWords      *int           `json:"min_words,omitempty" yaml:"min_words,omitempty" validate:"omitempty,gte=0"`
	MaxWords      *int           `json:"max_words,omitempty" yaml:"max_words,omitempty" validate:"omitempty,gte=0"`
	Enabled       *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ScoringConfig *ScoringConfig `json:"scoring_config,omitempty" yaml:"scoring_config,omitempty"`
}

// IsEnabled treats a missing flag as enabled.
func (c Criterion) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

// Blend returns the criterion's scoring config or the default.
func (c Criterion) Blend() ScoringConfig {
	if c.ScoringConfig == nil {
		return DefaultScoringConfig()
	}
	return *c.ScoringConfig
}

type Rubric struct {
	Criteria []Criterion `json:"criteria" yaml:"criteria" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Validate checks required fields and numeric ranges.
func (r *Rubric) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid rubric: %w", err)
	}
	return nil
}

type CriterionScore struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Weight          float64  `json:"weight"`
	KeywordScore    float64  `json:"keyword_score"`
	SemanticScore   float64  `json:"semantic_score"`
	LengthScore     float64  `json:"length_score"`
	CombinedScore   float64  `json:"combined_score"`
	WeightedScore   float64  `json:"weighted_score"`
	KeywordsFound   []string `json:"keywords_found"`
	KeywordsMissing []string `json:"keywords_missing"`
	Feedback        string   `json:"feedback"`
	AlignmentBand   string   `json:"alignment_band"`
}

type ScoreResponse struct {
	OverallScore      float64          `json:"overall_score"`
	WordCount         int              `json:"word_count"`
	Criteria          []CriterionScore `json:"criteria"`
	TranscriptPreview string           `json:"transcript_preview"`
}
