package interfaces

import (
	"context"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
)

// PredictionServiceInterface defines the contract transports use to obtain a prediction
type PredictionServiceInterface interface {
	Predict(ctx context.Context, payload map[string]any) (*domain.PredictionResult, error)
	PredictJSON(ctx context.Context, body []byte) (*domain.PredictionResult, error)
}
