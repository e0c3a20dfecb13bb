package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRecover(t *testing.T) {
	h := WithRecover(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rw.Code)
	}
}

func TestWithRecoverPassesThrough(t *testing.T) {
	h := WithRecover(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	if rw.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rw.Code)
	}
}
