package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
	apperrors "github.com/vladimiradmaev/tech-breaks/internal/errors"
	"github.com/vladimiradmaev/tech-breaks/internal/interfaces"
	"github.com/vladimiradmaev/tech-breaks/internal/metrics"
)

const (
	serviceName    = "Tech Breaks ML Service"
	serviceID      = "tech-breaks"
	maxPayloadSize = 1 << 20
)

// Handler serves the prediction API.
type Handler struct {
	predictor  interfaces.PredictionServiceInterface
	errHandler *apperrors.Handler
	startTime  time.Time
	now        func() time.Time
}

func NewHandler(predictor interfaces.PredictionServiceInterface, logger *slog.Logger) *Handler {
	return &Handler{
		predictor:  predictor,
		errHandler: apperrors.NewHandler(logger),
		startTime:  time.Now(),
		now:        time.Now,
	}
}

// RegisterRoutes registers the API on mux. The metrics route is only added
// when m is non-nil.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, m *metrics.Metrics) {
	mux.HandleFunc("GET /{$}", h.Info)
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("GET /healthz", h.Healthz)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
}

type endpointDoc struct {
	Method         string         `json:"method"`
	Description    string         `json:"description"`
	ExamplePayload map[string]any `json:"example_payload,omitempty"`
}

// InfoResponse describes the service and its request shape.
type InfoResponse struct {
	Name      string                 `json:"name"`
	Status    string                 `json:"status"`
	Time      string                 `json:"time"`
	Endpoints map[string]endpointDoc `json:"endpoints"`
}

// HealthResponse is the JSON response for liveness checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Info handles GET /.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:   serviceName,
		Status: "running",
		Time:   h.now().Format(time.RFC3339),
		Endpoints: map[string]endpointDoc{
			"/": {
				Method:      http.MethodGet,
				Description: "Service information",
			},
			"/predict": {
				Method:         http.MethodPost,
				Description:    "Predict burnout risk",
				ExamplePayload: domain.ExamplePayload(),
			},
		},
	})
}

// Predict handles POST /predict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		h.writeError(w, r, apperrors.WrapValidation(err))
		return
	}

	result, err := h.predictor.PredictJSON(r.Context(), body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Healthz handles liveness probe requests.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceID,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.errHandler.Handle(r.Context(), err)

	status := http.StatusInternalServerError
	if apperrors.IsValidation(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: apperrors.PublicMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
