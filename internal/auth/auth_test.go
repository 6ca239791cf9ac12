package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func requestWithAuth(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.Header.Set("Authorization", value)
	}
	return r
}

func TestStaticAuthenticator(t *testing.T) {
	a := NewStaticAuthenticator([]string{"key-one", "key-two"})

	if err := a.Authenticate(requestWithAuth("Bearer key-one")); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	if err := a.Authenticate(requestWithAuth("bearer key-two")); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
	if err := a.Authenticate(requestWithAuth("Bearer wrong")); err == nil {
		t.Fatal("wrong key accepted")
	}
	if err := a.Authenticate(requestWithAuth("")); err == nil {
		t.Fatal("missing header accepted")
	}
	if err := a.Authenticate(requestWithAuth("Bearer ")); err == nil {
		t.Fatal("empty token accepted")
	}
}

func TestMiddleware(t *testing.T) {
	a := NewStaticAuthenticator([]string{"key-one"})
	var reached bool
	handler := Middleware(a, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithAuth("Bearer nope"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if reached {
		t.Fatal("handler reached despite rejection")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithAuth("Bearer key-one"))
	if rec.Code != http.StatusOK || !reached {
		t.Fatalf("authenticated request failed: %d", rec.Code)
	}
}
