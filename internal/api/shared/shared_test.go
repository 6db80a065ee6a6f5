package shared

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/spending-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32, "Expected trace ID length to be 32 hex characters")
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)), "Expected distinct trace IDs")
	assert.Empty(t, GetTraceID(context.WithValue(ctx, TraceIDKey, 123)))
}

func TestCaller(t *testing.T) {
	_, ok := GetCaller(context.Background())
	assert.False(t, ok)

	_, ok = GetCaller(WithCaller(context.Background(), ""))
	assert.False(t, ok, "empty caller is not authenticated")

	email, ok := GetCaller(WithCaller(context.Background(), "a@example.com"))
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", email)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	buf, log := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/spending/", nil)
	ctx := logger.WithLogger(SetTraceID(req.Context()), log)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Internal server error",
		errors.New("dial postgres://admin:hunter2@db:5432/app failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["detail"])
	assert.Equal(t, GetTraceID(ctx), body["trace_id"])
	assert.NotContains(t, rec.Body.String(), "hunter2")

	logs := buf.String()
	assert.Contains(t, logs, "API error response")
	assert.NotContains(t, logs, "hunter2")
}

func TestRespondWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithMessage(rec, httptest.NewRequest(http.MethodPost, "/spending/new", nil), "Record created successfully")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Record created successfully"}`, rec.Body.String())
}

type validated struct {
	Email string `validate:"required,email"`
}

func TestDecodeAndValidate(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Email":"x"}`))
	var v validated
	require.NoError(t, DecodeJSON(rec, req, &v))
	assert.Error(t, ValidateRequest(&v))

	v.Email = "x@example.com"
	assert.NoError(t, ValidateRequest(&v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(rec, req, &v))
}
