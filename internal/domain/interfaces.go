package domain

import "context"

// Scorer maps risk inputs to a tier. Implementations must be pure and safe
// for concurrent use.
type Scorer interface {
	Score(inputs RiskInputs) RiskTier
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
	Stop()
}
