package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func guardedHandler(t *testing.T, tokens *TokenManager) http.Handler {
	t.Helper()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RequireAdmin("admin-key", tokens, zap.NewNop())(ok)
}

func TestRequireAdminSharedSecret(t *testing.T) {
	tokens := NewTokenManager("token-secret", time.Hour)
	handler := guardedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Admin-Key", "admin-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: status %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("no credentials: status %d, want 403", rec.Code)
	}
}

func TestRequireAdminBearerToken(t *testing.T) {
	tokens := NewTokenManager("token-secret", time.Hour)
	handler := guardedHandler(t, tokens)

	token, err := tokens.Issue(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", rec.Code)
	}

	expired, err := tokens.Issue(time.Now().Add(-2 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expired token: status %d, want 403", rec.Code)
	}
}
