package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/domain/models"
	"taskflow/internal/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelSurvivesAuthChain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	verifier := &stubVerifier{claims: &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Role:             "authenticated",
	}}

	// Same ordering as the server: metrics outside, auth inside, so the
	// request the mux routes is the clone auth created
	var root http.Handler = mux
	root = Auth(verifier, nil)(root)
	root = Metrics(mux)(root)

	routed := metrics.RequestCounter.WithLabelValues("GET", "GET /api/me", "200")
	unmatched := metrics.RequestCounter.WithLabelValues("GET", "unmatched", "200")
	routedBefore := testutil.ToFloat64(routed)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	root.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := testutil.ToFloat64(routed) - routedBefore; got != 1 {
		t.Errorf("routed pattern counted %v times, want 1", got)
	}
	if got := testutil.ToFloat64(unmatched) - unmatchedBefore; got != 0 {
		t.Errorf("request counted as unmatched %v times, want 0", got)
	}
}

func TestMetrics_UnmatchedPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	root := Metrics(mux)(mux)

	unmatched := metrics.RequestCounter.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(unmatched)

	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	root.ServeHTTP(w, r)

	if got := testutil.ToFloat64(unmatched) - before; got != 1 {
		t.Errorf("unmatched counted %v times, want 1", got)
	}
}
