package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Feedback renders the one-line message for a metric from its typed details.
func Feedback(details any) string {
	switch d := details.(type) {
	case SalutationDetails:
		if d.Level == "none" {
			return "No greeting detected."
		}
		return fmt.Sprintf("Greeting level: %s.", cases.Title(language.English).String(d.Level))
	case KeywordDetails:
		var fb []string
		if len(d.MustMissing) > 0 {
			fb = append(fb, fmt.Sprintf("Missing must-have: %s.", strings.Join(d.MustMissing, ", ")))
		}
		if len(d.GoodMissing) > 0 {
			fb = append(fb, fmt.Sprintf("Could add: %s.", strings.Join(d.GoodMissing, ", ")))
		}
		if len(fb) == 0 {
			return "All key elements present."
		}
		return strings.Join(fb, " ")
	case FlowDetails:
		if d.OrderFollowed {
			return "Logical order followed."
		}
		return "Improve order: greeting → basics → additional → closing."
	case SpeechRateDetails:
		if d.WPM == nil {
			return "Provide duration for speech rate scoring."
		}
		return fmt.Sprintf("WPM %s classified as %s.", formatFloat(*d.WPM), d.Band)
	case GrammarDetails:
		return fmt.Sprintf("Grammar band %s with %d errors.", d.Band, d.Errors)
	case VocabularyDetails:
		return fmt.Sprintf("TTR %s (%s).", formatFloat(d.TTR), d.Band)
	case ClarityDetails:
		return fmt.Sprintf("Filler rate %s%% (%s).", formatFloat(d.RatePercent), d.Band)
	case EngagementDetails:
		return fmt.Sprintf("Positive sentiment %s (%s).", formatFloat(d.PosProbability), d.Band)
	case CoverageDetails:
		switch {
		case d.Band == "disabled":
			return "Semantic coverage disabled."
		case d.AverageSimilarity == nil:
			return "Semantic coverage unavailable."
		}
		return fmt.Sprintf("Conceptual coverage %s (%s).", formatFloat(*d.AverageSimilarity), d.Band)
	}
	return ""
}

// formatFloat prints the shortest representation, always with a fractional
// part ("130.0", "0.857").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
