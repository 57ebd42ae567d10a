package analysis

import "strings"

// RiskAnalyzer emits the generic risk catalog unconditionally, then the
// keyword-triggered risks whose trigger occurs in the description. Impact
// and likelihood come from the catalog entry, never from context.
type RiskAnalyzer struct {
	dict *Dictionary
}

// NewRiskAnalyzer creates a risk analyzer over the given dictionary.
func NewRiskAnalyzer(dict *Dictionary) *RiskAnalyzer {
	return &RiskAnalyzer{dict: dict}
}

// Name implements Extractor.
func (r *RiskAnalyzer) Name() string { return "risks" }

// Extract implements Extractor. When several triggers map to the same risk
// description the first match wins (case-insensitive on the description);
// generic risks are seeded first so triggers can never duplicate them.
func (r *RiskAnalyzer) Extract(t *NormalizedText, b *Bundle) {
	seen := make(map[string]struct{}, len(r.dict.GenericRisks))

	for _, risk := range r.dict.GenericRisks {
		seen[strings.ToLower(risk.Description)] = struct{}{}
		b.Risks = append(b.Risks, risk)
	}

	if t.Empty() {
		return
	}

	for _, trig := range r.dict.RiskTriggers {
		if !t.HasKeyword(trig.Keyword) {
			continue
		}
		key := strings.ToLower(trig.Risk.Description)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		b.Risks = append(b.Risks, trig.Risk)
	}
}
