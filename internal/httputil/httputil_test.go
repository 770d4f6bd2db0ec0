package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawsnap/internal/app"
	"lawsnap/internal/config"
	"lawsnap/internal/laws"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthHandler(t *testing.T) {
	deps := app.Deps{
		Config: config.Config{LLMProvider: "local"},
		Log:    discardLogger(),
		Laws: laws.NewTable([]laws.Law{
			{Profession: "Doctor", Name: "A", Description: "a"},
			{Profession: "Doctor", Name: "B", Description: "b"},
			{Profession: "Farmer", Name: "C", Description: "c"},
		}),
	}

	rec := httptest.NewRecorder()
	HealthHandler(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["laws"])
	assert.Equal(t, float64(2), body["professions"])
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(discardLogger(), rec, "something broke", errors.New("cause"), 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "something broke")

	rec = httptest.NewRecorder()
	Fail(discardLogger(), rec, "bad input", errors.New("cause"), http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidationMessage(t *testing.T) {
	type form struct {
		Profession string `validate:"required"`
		Language   string `validate:"oneof=English Hindi"`
		Choice     int    `validate:"min=1,max=4"`
	}

	err := Validator.Struct(form{Language: "French", Choice: 7})
	require.Error(t, err)
	msg := ValidationMessage(err)
	assert.Contains(t, msg, "Profession is required")
	assert.Contains(t, msg, "Language must be one of: English Hindi")
	assert.Contains(t, msg, "Choice must be at most 4")

	assert.Equal(t, "plain", ValidationMessage(errors.New("plain")))
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/quiz/answer", nil))
	assert.Contains(t, buf.String(), `"path":"/quiz/answer"`)
	assert.Contains(t, buf.String(), `"status":418`)
}
