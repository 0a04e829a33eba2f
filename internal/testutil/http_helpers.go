package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/transaction/123-456",
//	    map[string]string{"uuid": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// NewRequestWithBody creates an HTTP request with a JSON-encoded body.
// This helper simplifies testing handlers that decode JSON payloads.
//
// Example:
//
//	req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/transaction", payload)
func NewRequestWithBody(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequestWithURLParamsAndBody combines chi URL parameters with a
// JSON-encoded body, for handlers that use both.
//
// Example:
//
//	req := testutil.NewRequestWithURLParamsAndBody(
//	    t,
//	    http.MethodPut,
//	    "/api/note/123-456",
//	    map[string]string{"uuid": "123-456"},
//	    payload,
//	)
func NewRequestWithURLParamsAndBody(t *testing.T, method, path string, params map[string]string, body interface{}) *http.Request {
	t.Helper()

	req := NewRequestWithBody(t, method, path, body)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// DecodeResponse decodes a recorded JSON response body into v.
//
// Example:
//
//	var got []model.Holding
//	testutil.DecodeResponse(t, rec, &got)
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
