package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func doRequest(t *testing.T, h http.HandlerFunc, method, target, body string, vars map[string]string, ctx context.Context) (*httptest.ResponseRecorder, envelope, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	rec := httptest.NewRecorder()
	h(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Equal(t, env.Status, rec.Code, "HTTP status mirrors the envelope status")
	return rec, env, raw
}

type fakeValidator struct {
	errs []string
	err  error
	seen []map[string]any
}

func (f *fakeValidator) check(data map[string]any) ([]string, error) {
	f.seen = append(f.seen, data)
	return f.errs, f.err
}

func (f *fakeValidator) ValidateCreate(_ context.Context, data map[string]any) ([]string, error) {
	return f.check(data)
}

func (f *fakeValidator) ValidateUpdate(_ context.Context, data map[string]any) ([]string, error) {
	return f.check(data)
}

