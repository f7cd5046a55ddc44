package scoring

import (
	"regexp"
	"strings"
	"unicode"
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Normalize lowercases s and replaces everything outside [a-z0-9] and
// whitespace with a space.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			out = append(out, r)
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, ' ')
		}
	}
	return string(out)
}

// WordTokens returns the normalized, whitespace-separated words of s.
func WordTokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// SentenceSplit splits on runs of '.', '!' and '?', dropping empty segments.
func SentenceSplit(s string) []string {
	parts := sentenceBreak.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TypeTokenRatio is distinct/total, or 0 for no words.
func TypeTokenRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	return float64(len(toSet(words))) / float64(len(words))
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

// containsWord reports whether phrase occurs in s bounded by non-word
// characters on both sides. s and phrase are expected lowercase.
func containsWord(s, phrase string) bool {
	return countWord(s, phrase, 1) > 0
}

// countWord counts non-overlapping occurrences of phrase in s that sit on
// word boundaries. limit <= 0 means no limit.
func countWord(s, phrase string, limit int) int {
	if phrase == "" {
		return 0
	}
	n, from := 0, 0
	for from <= len(s)-len(phrase) {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(phrase)
		if boundaryBefore(s, start, phrase) && boundaryAfter(s, end, phrase) {
			n++
			if limit > 0 && n >= limit {
				return n
			}
			from = end
			continue
		}
		from = start + 1
	}
	return n
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// A \b before phrase only constrains when the phrase itself starts with a
// word character; same for the end.
func boundaryBefore(s string, i int, phrase string) bool {
	if !isWordByte(phrase[0]) {
		return true
	}
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int, phrase string) bool {
	if !isWordByte(phrase[len(phrase)-1]) {
		return true
	}
	return i == len(s) || !isWordByte(s[i])
}
