package analysis

import (
	"fmt"
	"time"
)

// Impact rates how badly a risk hurts the project if it materializes.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Likelihood rates how probable a risk is.
type Likelihood string

const (
	LikelihoodLow    Likelihood = "Low"
	LikelihoodMedium Likelihood = "Medium"
	LikelihoodHigh   Likelihood = "High"
)

// Entity is a candidate domain object detected by keyword match. No
// relationships between co-occurring entities are inferred.
type Entity struct {
	Name           string `json:"name"`
	Responsibility string `json:"responsibility"`
}

// RiskItem is a cataloged project risk. Impact and likelihood are fixed per
// catalog entry, never computed from context.
type RiskItem struct {
	Description string     `json:"description"`
	Impact      Impact     `json:"impact"`
	Likelihood  Likelihood `json:"likelihood"`
	Category    string     `json:"category"`
}

// UserStory is a templated agile-format requirement statement. Benefit is
// always a generic placeholder.
type UserStory struct {
	Actor   string `json:"actor"`
	Feature string `json:"feature"`
	Benefit string `json:"benefit"`
}

// Text renders the story in the canonical "As a ..." template.
func (s UserStory) Text() string {
	return fmt.Sprintf("As a %s, I want to %s so that %s.", s.Actor, s.Feature, s.Benefit)
}

// Bundle is the aggregate output of one analysis run. Given the same
// description and dictionary, Entities, Risks, and Stories are identical
// across runs; only ID, CreatedAt, and Duration vary.
type Bundle struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Entities    []Entity    `json:"entities"`
	Risks       []RiskItem  `json:"risks"`
	Stories     []UserStory `json:"stories"`
	CreatedAt   time.Time   `json:"created_at"`
	Duration    float64     `json:"duration_seconds,omitempty"`
}
