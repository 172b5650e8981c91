package services

import (
	"fmt"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
)

// ScorerRules selects the rule-based scorer.
const ScorerRules = "rules"

// NewScorer returns the scorer registered under kind. An empty kind selects
// the rule-based scorer.
func NewScorer(kind string) (domain.Scorer, error) {
	switch kind {
	case "", ScorerRules:
		return NewRuleScorer(), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", kind)
	}
}

// RuleScorer adds five equally weighted factors, each worth 0, 1 or 2
// points, and halves the total into a tier capped at HIGH.
type RuleScorer struct{}

func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

// Score implements domain.Scorer
func (s *RuleScorer) Score(inputs domain.RiskInputs) domain.RiskTier {
	return domain.RiskTier(min(int(domain.RiskHigh), s.Accumulate(inputs)/2))
}

// Accumulate returns the raw factor sum in the range 0..10
func (s *RuleScorer) Accumulate(inputs domain.RiskInputs) int {
	return screenTimePoints(inputs.ScreenTime) +
		breakPoints(inputs.Breaks) +
		lastBreakPoints(inputs.LastBreak) +
		moodPoints(inputs.Mood) +
		sleepPoints(inputs.Sleep)
}

func screenTimePoints(minutes float64) int {
	switch {
	case minutes > 240:
		return 2
	case minutes > 120:
		return 1
	default:
		return 0
	}
}

func breakPoints(count float64) int {
	switch {
	case count == 0:
		return 2
	case count < 2:
		return 1
	default:
		return 0
	}
}

func lastBreakPoints(minutesAgo float64) int {
	switch {
	case minutesAgo > 120:
		return 2
	case minutesAgo > 60:
		return 1
	default:
		return 0
	}
}

// lower mood is riskier
func moodPoints(score float64) int {
	switch {
	case score <= 2:
		return 2
	case score <= 3:
		return 1
	default:
		return 0
	}
}

func sleepPoints(hours float64) int {
	switch {
	case hours < 5:
		return 2
	case hours < 7:
		return 1
	default:
		return 0
	}
}
