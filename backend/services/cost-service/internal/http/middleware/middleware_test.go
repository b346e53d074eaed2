package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "s3cret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			id = "-"
		}
		_, _ = w.Write([]byte(id))
	})
}

func TestIdentity(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
		auth   string
		status int
		body   string
	}{
		{name: "anonymous", status: http.StatusOK, body: "-"},
		{name: "gateway header", header: "u42", status: http.StatusOK, body: "u42"},
		{name: "header when no secret", secret: "", header: "u42", auth: "Bearer garbage", status: http.StatusOK, body: "u42"},
		{
			name:   "token wins",
			secret: testSecret,
			header: "u42",
			auth:   "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": "u7", "exp": time.Now().Add(time.Hour).Unix()}),
			status: http.StatusOK,
			body:   "u7",
		},
		{
			name:   "numeric claim",
			secret: testSecret,
			auth:   "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": float64(12)}),
			status: http.StatusOK,
			body:   "12",
		},
		{
			name:   "wrong secret",
			secret: testSecret,
			auth:   "Bearer " + signed(t, "other", jwt.MapClaims{"user_id": "u7"}),
			status: http.StatusUnauthorized,
		},
		{
			name:   "expired",
			secret: testSecret,
			auth:   "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": "u7", "exp": time.Now().Add(-time.Hour).Unix()}),
			status: http.StatusUnauthorized,
		},
		{name: "not bearer", secret: testSecret, auth: "Basic abc", status: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/energy-cost", nil)
			if tc.header != "" {
				req.Header.Set(UserIDHeader, tc.header)
			}
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rr := httptest.NewRecorder()
			Identity(tc.secret)(echoUser()).ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rr.Body.String())
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal error","code":"internal"}`, rr.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic in http handler").Len())
}

func TestLoggingRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/energy-cost/x", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
}
