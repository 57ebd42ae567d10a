package analysis

import "strings"

// EntityExtractor scans the description for dictionary entity keywords and
// emits one Entity per match with its canned responsibility text. Emission
// order follows dictionary order, not text order. Co-occurring entities are
// emitted independently; no relationships are inferred.
type EntityExtractor struct {
	dict *Dictionary
}

// NewEntityExtractor creates an entity extractor over the given dictionary.
func NewEntityExtractor(dict *Dictionary) *EntityExtractor {
	return &EntityExtractor{dict: dict}
}

// Name implements Extractor.
func (e *EntityExtractor) Name() string { return "entities" }

// Extract implements Extractor. Matches are deduplicated case-insensitively
// by entity name, keeping the first occurrence. Non-empty input that matches
// nothing yields a single generic "System" entity; empty input yields none.
func (e *EntityExtractor) Extract(t *NormalizedText, b *Bundle) {
	if t.Empty() {
		return
	}

	seen := make(map[string]struct{})
	for _, p := range e.dict.Entities {
		if !t.HasKeyword(p.Keyword) {
			continue
		}
		name := capitalize(p.Keyword)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		b.Entities = append(b.Entities, Entity{Name: name, Responsibility: p.Responsibility})
	}

	if len(b.Entities) == 0 {
		b.Entities = append(b.Entities, Entity{
			Name:           "System",
			Responsibility: "Handle core business logic and user interactions",
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
