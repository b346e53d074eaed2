package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	httpserver "energytrack/backend/services/cost-service/internal/http"
	"energytrack/backend/services/cost-service/internal/http/middleware"
)

func TestAccessLogRecordsUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httpserver.NewServer(":0", handler, logger, httpMiddlewares(logger, "")...)

	req := httptest.NewRequest(http.MethodGet, "/energy-cost", nil)
	req.Header.Set(middleware.UserIDHeader, "u42")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "u42", entries[0].ContextMap()["user_id"])
	assert.Equal(t, "/energy-cost", entries[0].ContextMap()["path"])
}

func TestAccessLogAnonymousHasNoUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	srv := httpserver.NewServer(":0", http.NotFoundHandler(), logger, httpMiddlewares(logger, "")...)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "user_id")
	assert.EqualValues(t, http.StatusNotFound, entries[0].ContextMap()["status"])
}
