package scoring

import "math"

// Transcript is the immutable input to one evaluation plus what is derived
// from it once up front.
type Transcript struct {
	Text            string
	Words           []string
	Sentences       []string
	DurationSeconds *float64
}

// NewTranscript tokenizes text once for all scorers.
func NewTranscript(text string, durationSeconds *float64) *Transcript {
	return &Transcript{
		Text:            text,
		Words:           WordTokens(text),
		Sentences:       SentenceSplit(text),
		DurationSeconds: durationSeconds,
	}
}

// MetricScore is one row of the report.
type MetricScore struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	RawScore float64 `json:"raw_score"`
	MaxScore float64 `json:"max_score"`
	Details  any     `json:"details"`
	Feedback string  `json:"feedback"`
}

// ExtractedDetails holds facts pulled from the transcript; nil means not found.
type ExtractedDetails struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age"`
	SchoolClass *string `json:"school_class"`
}

// EvaluationResponse is the full scored report.
type EvaluationResponse struct {
	TotalScore        float64          `json:"total_score"`
	MaxTotal          float64          `json:"max_total"`
	WordCount         int              `json:"word_count"`
	SentenceCount     int              `json:"sentence_count"`
	DurationSeconds   *float64         `json:"duration_seconds"`
	WPM               *float64         `json:"wpm"`
	Metrics           []MetricScore    `json:"metrics"`
	Extracted         ExtractedDetails `json:"extracted"`
	TranscriptPreview string           `json:"transcript_preview"`
	Version           string           `json:"version"`
	PerformanceMS     int64            `json:"performance_ms"`
	Notes             string           `json:"notes"`
}

// Metric returns the metric with the given id, or nil.
func (r *EvaluationResponse) Metric(id string) *MetricScore {
	for i := range r.Metrics {
		if r.Metrics[i].ID == id {
			return &r.Metrics[i]
		}
	}
	return nil
}

const previewLen = 240

// Preview truncates text to 240 characters, appending "..." when cut.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLen {
		return text
	}
	return string(r[:previewLen]) + "..."
}

// round halves to even on the scaled value, so 0.125 becomes 0.12.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
