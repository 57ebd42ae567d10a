package analysis

import "strings"

const (
	// minSentenceLen filters out fragments too short to carry a feature.
	minSentenceLen = 10

	genericBenefit = "I can accomplish my goals efficiently"
)

// StoryGenerator turns each meaningful sentence of the description into a
// templated user story. The actor is the first actor-dictionary token found
// in the sentence (defaulting to "user"); the feature is the sentence with
// leading filler stripped. The benefit is always the generic placeholder.
type StoryGenerator struct {
	dict *Dictionary

	actorSet map[string]struct{}
}

// NewStoryGenerator creates a story generator over the given dictionary.
func NewStoryGenerator(dict *Dictionary) *StoryGenerator {
	actors := make(map[string]struct{}, len(dict.Actors))
	for _, a := range dict.Actors {
		actors[strings.ToLower(a)] = struct{}{}
	}
	return &StoryGenerator{dict: dict, actorSet: actors}
}

// Name implements Extractor.
func (g *StoryGenerator) Name() string { return "stories" }

// Extract implements Extractor. Empty input yields no stories; non-empty
// input with no qualifying sentence yields one default story.
func (g *StoryGenerator) Extract(t *NormalizedText, b *Bundle) {
	if t.Empty() {
		return
	}

	for _, sentence := range t.Sentences {
		if len(sentence) < minSentenceLen {
			continue
		}

		feature := strings.ToLower(sentence)
		for _, prefix := range g.dict.FillerPrefixes {
			if strings.HasPrefix(feature, prefix) {
				feature = feature[len(prefix):]
				break
			}
		}
		feature = strings.TrimSpace(feature)
		if feature == "" {
			continue
		}

		b.Stories = append(b.Stories, UserStory{
			Actor:   g.actorFor(feature),
			Feature: feature,
			Benefit: genericBenefit,
		})
	}

	if len(b.Stories) == 0 {
		b.Stories = append(b.Stories, UserStory{
			Actor:   "user",
			Feature: "use the system",
			Benefit: "I can accomplish my tasks",
		})
	}
}

// actorFor returns the first actor-dictionary token in the sentence, scanning
// in sentence order so "admins can view reports" attributes to the admin.
func (g *StoryGenerator) actorFor(sentence string) string {
	for _, tok := range strings.FieldsFunc(sentence, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if _, ok := g.actorSet[tok]; ok {
			return tok
		}
		singular := strings.TrimSuffix(tok, "s")
		if singular != tok {
			if _, ok := g.actorSet[singular]; ok {
				return singular
			}
		}
	}
	return "user"
}
