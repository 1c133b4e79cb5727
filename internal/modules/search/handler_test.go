package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(repo Repository) *chi.Mux {
	router := chi.NewRouter()
	svc := &service{repo: repo, log: zap.NewNop(), now: time.Now}
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestSearchEndpoint(t *testing.T) {
	repo := newFakeRepository(
		listing(1, "Mercado A", "Arroz Tio João", 25.00),
		listing(2, "Mercado B", "Arroz Tio João", 22.00),
	)
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?product=arroz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var results []Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].StoreID != 2 {
		t.Errorf("cheapest listing must come first, got store %d", results[0].StoreID)
	}
	if results[0].Similarity != 1.0 {
		t.Errorf("sim = %v, want 1.0", results[0].Similarity)
	}
}

func TestSearchEndpointMissingTerm(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestSearchEndpointTalliesTerm(t *testing.T) {
	repo := newFakeRepository()
	router := newTestRouter(repo)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?product=Arroz", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200", rec.Code)
		}
	}
	if got := repo.recorded["arroz"]; got != 2 {
		t.Errorf("tally = %d, want 2", got)
	}
}
