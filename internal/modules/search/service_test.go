package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeListing struct {
	candidate Candidate
	blocked   bool
}

// fakeRepository mirrors the storage contract: blocked stores are filtered
// out before candidates ever reach the matcher.
type fakeRepository struct {
	listings  []fakeListing
	recorded  map[string]int
	recordErr error
	candErr   error
}

func newFakeRepository(listings ...fakeListing) *fakeRepository {
	return &fakeRepository{listings: listings, recorded: map[string]int{}}
}

func (r *fakeRepository) Candidates(ctx context.Context) ([]*Candidate, error) {
	if r.candErr != nil {
		return nil, r.candErr
	}
	var out []*Candidate
	for i := range r.listings {
		if r.listings[i].blocked {
			continue
		}
		c := r.listings[i].candidate
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeRepository) RecordTerm(ctx context.Context, term string) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.recorded[term]++
	return nil
}

func (r *fakeRepository) TrendingTerms(ctx context.Context, limit int) ([]*TrendingTerm, error) {
	return nil, nil
}

func (r *fakeRepository) ActiveOffers(ctx context.Context, limit int) ([]*Candidate, error) {
	return nil, nil
}

func newTestService(repo Repository, now time.Time) *service {
	return &service{repo: repo, log: zap.NewNop(), now: func() time.Time { return now }}
}

func listing(storeID int64, storeName, product string, price float64) fakeListing {
	return fakeListing{candidate: Candidate{
		StoreID:     storeID,
		StoreName:   storeName,
		ProductName: product,
		Price:       price,
	}}
}

func withPromo(l fakeListing, promo float64, expiresAt time.Time) fakeListing {
	l.candidate.PromoPrice = &promo
	l.candidate.PromoExpiresAt = &expiresAt
	return l
}

func TestSearchMissingTerm(t *testing.T) {
	svc := newTestService(newFakeRepository(), time.Now())
	if _, err := svc.Search(context.Background(), ""); !errors.Is(err, ErrMissingTerm) {
		t.Fatalf("got %v, want ErrMissingTerm", err)
	}
}

func TestSearchRanksByEffectivePrice(t *testing.T) {
	now := time.Now()
	repo := newFakeRepository(
		listing(1, "Mercado A", "Arroz Tio João", 25.00),
		withPromo(listing(2, "Mercado B", "Arroz Tio João", 22.00), 18.00, now.Add(-time.Hour)),
		listing(3, "Mercado C", "Feijão", 8.00),
	)
	svc := newTestService(repo, now)

	results, err := svc.Search(context.Background(), "arroz")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// The expired promo does not apply, so store B wins on its regular 22.00.
	if results[0].StoreID != 2 || results[0].EffectivePrice != 22.00 {
		t.Errorf("first result = store %d at %v, want store 2 at 22.00",
			results[0].StoreID, results[0].EffectivePrice)
	}
	if results[1].StoreID != 1 || results[1].EffectivePrice != 25.00 {
		t.Errorf("second result = store %d at %v, want store 1 at 25.00",
			results[1].StoreID, results[1].EffectivePrice)
	}
	for _, res := range results {
		if res.ProductName == "Feijão" {
			t.Error("Feijão must not match query arroz")
		}
	}
}

func TestSearchExcludesBlockedStores(t *testing.T) {
	now := time.Now()
	cheapest := listing(2, "Mercado B", "Arroz Tio João", 22.00)
	cheapest.blocked = true
	repo := newFakeRepository(
		listing(1, "Mercado A", "Arroz Tio João", 25.00),
		cheapest,
	)
	svc := newTestService(repo, now)

	results, err := svc.Search(context.Background(), "arroz")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].StoreID != 1 {
		t.Fatalf("blocked store leaked into results: %+v", results)
	}
}

func TestSearchMatchesAccentInsensitively(t *testing.T) {
	repo := newFakeRepository(listing(1, "Mercado A", "Feijão Carioca", 9.50))
	svc := newTestService(repo, time.Now())

	for _, term := range []string{"feijão", "FEIJAO", "feijao"} {
		results, err := svc.Search(context.Background(), term)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 {
			t.Errorf("query %q: got %d results, want 1", term, len(results))
		}
	}
}

func TestPromoExpiryBoundary(t *testing.T) {
	now := time.Now()

	// Expiry exactly equal to now resolves to expired.
	repo := newFakeRepository(withPromo(listing(1, "Mercado A", "Leite Integral", 6.00), 5.00, now))
	svc := newTestService(repo, now)
	results, err := svc.Search(context.Background(), "leite")
	if err != nil {
		t.Fatal(err)
	}
	if results[0].EffectivePrice != 6.00 {
		t.Errorf("expiry == now: effective price %v, want regular 6.00", results[0].EffectivePrice)
	}

	// One instant before expiry the promo still applies.
	repo = newFakeRepository(withPromo(listing(1, "Mercado A", "Leite Integral", 6.00), 5.00, now.Add(time.Nanosecond)))
	svc = newTestService(repo, now)
	results, err = svc.Search(context.Background(), "leite")
	if err != nil {
		t.Fatal(err)
	}
	if results[0].EffectivePrice != 5.00 {
		t.Errorf("expiry > now: effective price %v, want promo 5.00", results[0].EffectivePrice)
	}
}

func TestSubstringOutranksFuzzyMatch(t *testing.T) {
	repo := newFakeRepository(
		listing(1, "Mercado A", "Arros", 5.00), // typo product, fuzzy match only
		listing(2, "Mercado B", "Arroz Branco", 30.00),
	)
	svc := newTestService(repo, time.Now())

	results, err := svc.Search(context.Background(), "arroz")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].StoreID != 2 {
		t.Errorf("substring match must outrank fuzzy match regardless of price, got store %d first", results[0].StoreID)
	}
	if results[0].Similarity != 1.0 {
		t.Errorf("substring match similarity = %v, want 1.0", results[0].Similarity)
	}
}

func TestSearchOrderingIsStable(t *testing.T) {
	repo := newFakeRepository(
		listing(1, "Mercado A", "Arroz", 10.00),
		listing(2, "Mercado B", "Arroz", 10.00),
		listing(3, "Mercado C", "Arroz", 10.00),
	)
	svc := newTestService(repo, time.Now())

	for run := 0; run < 3; run++ {
		results, err := svc.Search(context.Background(), "arroz")
		if err != nil {
			t.Fatal(err)
		}
		for i, want := range []int64{1, 2, 3} {
			if results[i].StoreID != want {
				t.Fatalf("run %d: position %d = store %d, want %d", run, i, results[i].StoreID, want)
			}
		}
	}
}

func TestSearchTalliesRawTermLowercased(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, time.Now())

	for i := 0; i < 3; i++ {
		if _, err := svc.Search(context.Background(), "Açaí"); err != nil {
			t.Fatal(err)
		}
	}
	// Lower-cased but otherwise untouched: accents survive in the tally.
	if got := repo.recorded["açaí"]; got != 3 {
		t.Errorf("tally count = %d, want 3 (recorded: %v)", got, repo.recorded)
	}
}

func TestSearchSurvivesTallyFailure(t *testing.T) {
	repo := newFakeRepository(listing(1, "Mercado A", "Arroz", 10.00))
	repo.recordErr = errors.New("tally unavailable")
	svc := newTestService(repo, time.Now())

	results, err := svc.Search(context.Background(), "arroz")
	if err != nil {
		t.Fatalf("tally failure must not fail the search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestSearchPropagatesStorageFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.candErr = errors.New("connection refused")
	svc := newTestService(repo, time.Now())

	if _, err := svc.Search(context.Background(), "arroz"); !errors.Is(err, repo.candErr) {
		t.Fatalf("got %v, want the storage error", err)
	}
}
