package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizzaria-api/internal/models"
	"pizzaria-api/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	identities map[string]*models.Identity
	err        error
}

func (f *fakeVerifier) Verify(_ context.Context, value string) (*models.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	identity, ok := f.identities[value]
	if !ok {
		return nil, services.ErrInvalidToken
	}
	return identity, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func identityEcho(t *testing.T, want *models.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r)
		require.True(t, ok)
		assert.Equal(t, want, identity)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthentication(t *testing.T) {
	ana := &models.Identity{UserID: 5, Email: "ana@pizzaria.com", TokenID: "tok-1"}
	verifier := &fakeVerifier{identities: map[string]*models.Identity{"good": ana}}
	handler := Authentication(verifier, zerolog.Nop())(identityEcho(t, ana))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid bearer", "Bearer good", http.StatusOK},
		{"lower-case scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"revoked or unknown", "Bearer bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/flavors", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				body := decodeEnvelope(t, rec)
				assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
				assert.Equal(t, "Não autenticado.", body["message"])
			}
		})
	}
}

func TestAuthentication_VerifierFailureIs500(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("db down")}
	handler := Authentication(verifier, zerolog.Nop())(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestValidation(t *testing.T) {
	handler := RequestValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		want        int
	}{
		{"json post", http.MethodPost, "application/json; charset=utf-8", `{}`, http.StatusNoContent},
		{"form patch", http.MethodPatch, "application/x-www-form-urlencoded", "a=b", http.StatusUnsupportedMediaType},
		{"bodiless post", http.MethodPost, "", "", http.StatusNoContent},
		{"get ignored", http.MethodGet, "text/plain", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestErrorHandling_RecoversPanic(t *testing.T) {
	handler := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Erro interno do servidor", decodeEnvelope(t, rec)["message"])
}

func TestRateLimiter(t *testing.T) {
	handler := NewRateLimiter(0, 1).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders()(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestAuthentication_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handler := RequestLogging(zerolog.Nop())(Authentication(&fakeVerifier{}, logger)(http.NotFoundHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flavors", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req.Header.Set("Authorization", "Bearer revoked")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
