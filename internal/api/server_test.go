package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
	apperrors "github.com/vladimiradmaev/tech-breaks/internal/errors"
	"github.com/vladimiradmaev/tech-breaks/internal/metrics"
	"github.com/vladimiradmaev/tech-breaks/internal/services"
)

type failingPredictor struct {
	err error
}

func (f failingPredictor) Predict(context.Context, map[string]any) (*domain.PredictionResult, error) {
	return nil, f.err
}

func (f failingPredictor) PredictJSON(context.Context, []byte) (*domain.PredictionResult, error) {
	return nil, f.err
}

type panickingPredictor struct{}

func (panickingPredictor) Predict(context.Context, map[string]any) (*domain.PredictionResult, error) {
	panic("boom")
}

func (panickingPredictor) PredictJSON(context.Context, []byte) (*domain.PredictionResult, error) {
	panic("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Server, *metrics.Metrics) {
	t.Helper()
	m, err := metrics.New("tech-breaks-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	svc := services.NewPredictionService(services.NewRuleScorer(), m)
	return NewServer("127.0.0.1:0", svc, m, discardLogger()), m
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Tech Breaks ML Service", body["name"])
	assert.Equal(t, "running", body["status"])

	_, err := time.Parse(time.RFC3339, body["time"].(string))
	assert.NoError(t, err)

	endpoints := body["endpoints"].(map[string]any)
	require.Contains(t, endpoints, "/")
	require.Contains(t, endpoints, "/predict")

	predict := endpoints["/predict"].(map[string]any)
	assert.Equal(t, "POST", predict["method"])
	assert.Equal(t, map[string]any{
		"screen_time": float64(180),
		"breaks":      float64(1),
		"last_break":  float64(90),
		"mood":        float64(3),
		"sleep":       float64(7),
	}, predict["example_payload"])
}

func TestPredict_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/predict",
		`{"screen_time":300,"breaks":0,"last_break":150,"mood":1,"sleep":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.PredictionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.RiskHigh, result.BurnoutRisk)
	assert.Equal(t, "high", result.RiskLevel)
	assert.Equal(t, services.Recommendations(domain.RiskHigh), result.Recommendations)
}

func TestPredict_LowRisk(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/predict",
		`{"screen_time":60,"breaks":3,"last_break":30,"mood":5,"sleep":8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"burnout_risk": 0,
		"risk_level": "low",
		"recommendations": ["You're doing great! Keep up the healthy habits!"]
	}`, rec.Body.String())
}

func TestPredict_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: "No data provided"},
		{name: "empty object", body: "{}", wantMsg: "No data provided"},
		{name: "null", body: "null", wantMsg: "No data provided"},
		{name: "not an object", body: "[1,2]", wantMsg: "payload must be a JSON object"},
	}

	srv, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv.Handler(), http.MethodPost, "/predict", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestPredict_WrongTypeNamesField(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/predict", `{"mood":"great"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "mood")
}

func TestPredict_MalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/predict", `{"screen_time":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestPredict_BodyTooLarge(t *testing.T) {
	srv, _ := newTestServer(t)

	big := `{"screen_time":` + strings.Repeat(" ", maxPayloadSize) + `1}`
	rec := do(t, srv.Handler(), http.MethodPost, "/predict", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict_InternalErrorIsMasked(t *testing.T) {
	predictor := failingPredictor{err: apperrors.NewInternalError(io.ErrUnexpectedEOF)}
	srv := NewServer("127.0.0.1:0", predictor, nil, discardLogger())

	rec := do(t, srv.Handler(), http.MethodPost, "/predict", `{"screen_time":10}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := NewServer("127.0.0.1:0", panickingPredictor{}, nil, discardLogger())

	rec := do(t, srv.Handler(), http.MethodPost, "/predict", `{"screen_time":10}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("headers on regular responses", func(t *testing.T) {
		rec := do(t, srv.Handler(), http.MethodGet, "/", "")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type,Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "GET,PUT,POST,DELETE,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight", func(t *testing.T) {
		for _, path := range []string{"/predict", "/", "/anything"} {
			rec := do(t, srv.Handler(), http.MethodOptions, path, "")
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Empty(t, rec.Body.String(), path)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		}
	})
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "tech-breaks", body.Service)
	assert.NotEmpty(t, body.Uptime)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv.Handler(), http.MethodPost, "/predict", `{"screen_time":300}`)
	do(t, srv.Handler(), http.MethodPost, "/predict", `{}`)

	rec := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "predictions_total")
	assert.Contains(t, out, "prediction_errors_total")
	assert.Contains(t, out, "http_request_duration")
	assert.Contains(t, out, `POST /predict`)
}

func TestMetricsDisabled(t *testing.T) {
	svc := services.NewPredictionService(services.NewRuleScorer(), nil)
	srv := NewServer("127.0.0.1:0", svc, nil, discardLogger())

	rec := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, srv.Handler(), http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, srv.Handler(), http.MethodGet, "/predict", "").Code)
}

func TestServer_StartShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
