package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nameRe   = regexp.MustCompile(`(?i)\bmy name is ([A-Z][a-zA-Z]*)\b`)
	myselfRe = regexp.MustCompile(`(?i)\bmyself ([A-Z][a-zA-Z]*)\b`)
	ageRe    = regexp.MustCompile(`(?i)\bI am (\d{1,2}) years? old\b`)
	classRe  = regexp.MustCompile(`(?i)class\s+(\d{1,2}(?:st|nd|rd|th|[a-z]|\d)?)\b`)
	schoolRe = regexp.MustCompile(`\bfrom ([A-Z][a-zA-Z0-9\s]*(?:School|Academy|College))\b`)
)

// ExtractName finds "my name is X", falling back to "myself X".
func ExtractName(text string) (string, bool) {
	if m := nameRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := myselfRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractAge finds "I am N year(s) old".
func ExtractAge(text string) (int, bool) {
	m := ageRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	age, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return age, true
}

// ExtractClass returns the class token, e.g. "9" or "8th".
func ExtractClass(text string) (string, bool) {
	if m := classRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractSchoolClassPhrase joins the school name and "Class N", whichever
// are present.
func ExtractSchoolClassPhrase(text string) (string, bool) {
	parts := make([]string, 0, 2)
	if m := schoolRe.FindStringSubmatch(text); m != nil {
		parts = append(parts, m[1])
	}
	if cls, ok := ExtractClass(text); ok {
		parts = append(parts, "Class "+cls)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

// Extract runs every extractor.
func Extract(text string) ExtractedDetails {
	var out ExtractedDetails
	if name, ok := ExtractName(text); ok {
		out.Name = &name
	}
	if age, ok := ExtractAge(text); ok {
		out.Age = &age
	}
	if phrase, ok := ExtractSchoolClassPhrase(text); ok {
		out.SchoolClass = &phrase
	}
	return out
}
