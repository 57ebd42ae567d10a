package analysis

import (
	"strings"
	"unicode"
)

// NormalizedText is the shared, read-only view of one description that all
// extractors scan. Built once per analysis run.
type NormalizedText struct {
	Raw       string
	Lower     string
	Tokens    []string
	Sentences []string

	tokenSet map[string]struct{}
}

// Normalize lower-cases the description and splits it into word tokens and
// sentences. Empty or whitespace-only input yields empty slices; that is a
// valid input, not an error.
func Normalize(raw string) *NormalizedText {
	lower := strings.ToLower(raw)

	t := &NormalizedText{
		Raw:      raw,
		Lower:    lower,
		tokenSet: make(map[string]struct{}),
	}

	if strings.TrimSpace(raw) == "" {
		return t
	}

	t.Tokens = strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range t.Tokens {
		t.tokenSet[tok] = struct{}{}
	}

	// Sentences split on terminal punctuation or newlines, mirroring how the
	// story generator consumes one statement per line or period.
	for _, s := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		s = strings.TrimSpace(s)
		if s != "" {
			t.Sentences = append(t.Sentences, s)
		}
	}

	return t
}

// Empty reports whether the input contained no words at all.
func (t *NormalizedText) Empty() bool {
	return len(t.Tokens) == 0
}

// HasToken reports whether word occurs as a whole token.
func (t *NormalizedText) HasToken(word string) bool {
	_, ok := t.tokenSet[word]
	return ok
}

// HasKeyword matches a dictionary keyword against the text. Single words
// match as whole tokens, including the naive plural variant (keyword+"s").
// Phrases and hyphenated keywords ("user data", "real-time") match as
// substrings of the lower-cased text.
func (t *NormalizedText) HasKeyword(keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.ContainsAny(kw, " -") {
		return strings.Contains(t.Lower, kw)
	}
	if t.HasToken(kw) || t.HasToken(kw+"s") {
		return true
	}
	// singular variant for keywords listed in plural form
	if trimmed := strings.TrimSuffix(kw, "s"); trimmed != kw && t.HasToken(trimmed) {
		return true
	}
	return false
}
