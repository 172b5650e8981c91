package services

import "github.com/vladimiradmaev/tech-breaks/internal/domain"

var recommendations = map[domain.RiskTier][]string{
	domain.RiskLow: {
		"You're doing great! Keep up the healthy habits!",
	},
	domain.RiskMedium: {
		"Consider taking a short break",
		"Do some quick stretches",
		"Drink some water",
	},
	domain.RiskHigh: {
		"Take a longer break immediately",
		"Go for a short walk",
		"Do some deep breathing exercises",
		"Consider ending your work session soon",
	},
}

// Recommendations returns a copy of the fixed advice list for tier.
// Tiers outside LOW..HIGH are clamped.
func Recommendations(tier domain.RiskTier) []string {
	switch {
	case tier < domain.RiskLow:
		tier = domain.RiskLow
	case tier > domain.RiskHigh:
		tier = domain.RiskHigh
	}
	list := recommendations[tier]
	out := make([]string, len(list))
	copy(out, list)
	return out
}
