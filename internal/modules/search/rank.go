package search

import (
	"sort"
	"time"
)

// effectivePrice resolves the price that applies at now: the promo price
// while a promotion is active, the regular price otherwise. An expiry exactly
// equal to now counts as expired.
func effectivePrice(c *Candidate, now time.Time) float64 {
	if c.PromoPrice != nil && c.PromoExpiresAt != nil && c.PromoExpiresAt.After(now) {
		return *c.PromoPrice
	}
	return c.Price
}

// rank orders results by match quality descending, then effective price
// ascending. The sort is stable, so equal (score, price) pairs keep their
// input order and re-querying unchanged data yields the same sequence.
func rank(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].EffectivePrice < results[j].EffectivePrice
	})
}
