package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

type stubVerifier struct {
	claims *models.AccessClaims
	err    error
}

func (s *stubVerifier) VerifyToken(token string) (*models.AccessClaims, error) {
	return s.claims, s.err
}

func (s *stubVerifier) Close() error { return nil }

func okHandler(sawClaims *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawClaims != nil {
			*sawClaims = httputil.GetClaims(r) != nil
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	verifier := &stubVerifier{claims: &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Role:             "authenticated",
	}}

	var sawClaims bool
	h := Auth(verifier, nil)(okHandler(&sawClaims))

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !sawClaims {
		t.Error("claims not placed in context")
	}
}

func TestAuth_MissingOrInvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"no header", "", nil},
		{"wrong scheme", "Basic abc", nil},
		{"empty token", "Bearer ", nil},
		{"rejected token", "Bearer bad", domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{err: tt.err}
			if tt.err == nil {
				verifier.claims = &models.AccessClaims{}
			}
			h := Auth(verifier, nil)(okHandler(nil))

			r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuth_PublicPaths(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthorized}
	public := map[string]bool{
		"/health":          true,
		"/api/auth/signup": true,
	}
	h := Auth(verifier, public)(okHandler(nil))

	for _, path := range []string{"/health", "/api/auth/signup"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want pass-through", path, w.Code)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("protected path: status = %d, want 401", w.Code)
	}
}
