package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etfolio/etf-tracker-backend/internal/api/middleware"
	"github.com/etfolio/etf-tracker-backend/internal/testutil"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := middleware.ValidateUUIDMiddleware(testHandler)

	t.Run("passes through a valid UUID", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a malformed UUID", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/not-a-uuid",
			map[string]string{"uuid": "not-a-uuid"},
		)
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a missing UUID", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/",
			map[string]string{},
		)
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
