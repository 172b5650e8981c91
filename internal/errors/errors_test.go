package errors

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorString(t *testing.T) {
	err := NewValidationError("No data provided")
	assert.Equal(t, "validation: No data provided", err.Error())

	wrapped := NewInternalError(fmt.Errorf("boom"))
	assert.Equal(t, "internal: internal server error (internal: boom)", wrapped.Error())
}

func TestAppError_Is(t *testing.T) {
	err := fmt.Errorf("predict: %w", New(ErrorTypeValidation, "NO_DATA", "No data provided"))
	assert.ErrorIs(t, err, ErrNoData)
	assert.NotErrorIs(t, err, ErrInternalServer)

	cause := stderrors.New("redis down")
	assert.ErrorIs(t, NewExternalAPIError(cause, "redis"), cause)
}

func TestWrapValidation_KeepsUnderlyingMessage(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := WrapValidation(cause)

	assert.True(t, IsValidation(err))
	assert.Equal(t, "unexpected end of JSON input", PublicMessage(err))
	assert.ErrorIs(t, err, cause)
}

func TestPublicMessage_MasksNonValidation(t *testing.T) {
	assert.Equal(t, "internal server error", PublicMessage(NewInternalError(stderrors.New("nil map"))))
	assert.Equal(t, "internal server error", PublicMessage(stderrors.New("plain")))
	assert.False(t, IsValidation(stderrors.New("plain")))
}

func TestSourceIsCaller(t *testing.T) {
	err := NewValidationError("x")
	assert.Contains(t, err.Source, "errors_test.go")
}

func TestHandler_LogsByType(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(slog.New(slog.NewTextHandler(&buf, nil)))

	h.Handle(context.Background(), NewValidationError("bad mood").WithContext("field", "mood"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "field=mood")

	buf.Reset()
	h.Handle(context.Background(), NewTimeoutError("telegram send"))
	assert.Contains(t, buf.String(), "level=ERROR")

	buf.Reset()
	h.Handle(context.Background(), nil)
	assert.Empty(t, buf.String())

	returned := h.LogAndReturn(context.Background(), stderrors.New("plain"))
	assert.EqualError(t, returned, "plain")
	assert.Contains(t, buf.String(), "Unhandled error")
}
