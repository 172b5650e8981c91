package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
	apperrors "github.com/vladimiradmaev/tech-breaks/internal/errors"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
	"github.com/vladimiradmaev/tech-breaks/internal/metrics"
)

// PredictionService turns loosely typed payloads into predictions. It holds
// no mutable state and is safe for concurrent use.
type PredictionService struct {
	scorer  domain.Scorer
	metrics *metrics.Metrics
}

// NewPredictionService creates a prediction service. m may be nil.
func NewPredictionService(scorer domain.Scorer, m *metrics.Metrics) *PredictionService {
	return &PredictionService{
		scorer:  scorer,
		metrics: m,
	}
}

// Predict scores a decoded payload. Missing keys take their defaults; an
// empty payload is rejected with "No data provided".
func (s *PredictionService) Predict(ctx context.Context, payload map[string]any) (*domain.PredictionResult, error) {
	return s.observe(ctx, func() (*domain.PredictionResult, error) {
		return s.predict(ctx, payload)
	})
}

// PredictJSON decodes a raw request body and scores it. Every JSON value
// that is empty or falsy counts as no data.
func (s *PredictionService) PredictJSON(ctx context.Context, body []byte) (*domain.PredictionResult, error) {
	return s.observe(ctx, func() (*domain.PredictionResult, error) {
		body = bytes.TrimSpace(body)
		if len(body) == 0 {
			return nil, apperrors.ErrNoData
		}

		var doc any
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, apperrors.WrapValidation(err)
		}
		if isEmptyDocument(doc) {
			return nil, apperrors.ErrNoData
		}

		payload, ok := doc.(map[string]any)
		if !ok {
			return nil, apperrors.NewValidationError("payload must be a JSON object")
		}
		return s.predict(ctx, payload)
	})
}

func (s *PredictionService) observe(ctx context.Context, fn func() (*domain.PredictionResult, error)) (*domain.PredictionResult, error) {
	result, err := fn()
	if err != nil {
		s.metrics.RecordPredictionError(ctx)
		return nil, err
	}
	s.metrics.RecordPrediction(ctx, result.RiskLevel)
	return result, nil
}

func (s *PredictionService) predict(ctx context.Context, payload map[string]any) (*domain.PredictionResult, error) {
	if len(payload) == 0 {
		return nil, apperrors.ErrNoData
	}

	msg, err := validatePayloadTypes(payload)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}

	inputs, err := inputsFromPayload(payload)
	if err != nil {
		return nil, apperrors.WrapValidation(err)
	}

	tier, err := s.score(inputs)
	if err != nil {
		return nil, apperrors.WrapValidation(err)
	}

	logger.WithContext(ctx).Debug("burnout risk predicted",
		"screen_time", inputs.ScreenTime,
		"breaks", inputs.Breaks,
		"last_break", inputs.LastBreak,
		"mood", inputs.Mood,
		"sleep", inputs.Sleep,
		"burnout_risk", int(tier),
	)

	return &domain.PredictionResult{
		BurnoutRisk:     tier,
		RiskLevel:       tier.Label(),
		Recommendations: Recommendations(tier),
	}, nil
}

// score converts a panicking scorer into an error so it surfaces like any
// other bad input.
func (s *PredictionService) score(inputs domain.RiskInputs) (tier domain.RiskTier, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	tier = s.scorer.Score(inputs)
	if !tier.Valid() {
		return 0, fmt.Errorf("scorer returned out-of-range tier %d", int(tier))
	}
	return tier, nil
}

func inputsFromPayload(payload map[string]any) (domain.RiskInputs, error) {
	inputs := domain.DefaultRiskInputs()
	targets := map[string]*float64{
		domain.FieldScreenTime: &inputs.ScreenTime,
		domain.FieldBreaks:     &inputs.Breaks,
		domain.FieldLastBreak:  &inputs.LastBreak,
		domain.FieldMood:       &inputs.Mood,
		domain.FieldSleep:      &inputs.Sleep,
	}
	for field, target := range targets {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		v, err := toNumber(raw)
		if err != nil {
			return domain.RiskInputs{}, fmt.Errorf("%s: %w", field, err)
		}
		*target = v
	}
	return inputs, nil
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func isEmptyDocument(doc any) bool {
	switch v := doc.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	case float64:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}
