package catalog_test

import (
	"math"
	"testing"

	"github.com/nightbite/restaurant-booking/internal/catalog"
	"github.com/nightbite/restaurant-booking/internal/model"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func fixtures() []model.Restaurant {
	return []model.Restaurant{
		{ID: 1, Name: "Zen Garden", Tag: "japanese", Ratings: 4.5, PriceRange: ip(3), Latitude: fp(11.57), Longitude: fp(104.92)},
		{ID: 2, Name: "angkor kitchen", Tag: "khmer", Ratings: 4.5, PriceRange: ip(2), Latitude: fp(11.55), Longitude: fp(104.93)},
		{ID: 3, Name: "Brooklyn Grill", Tag: "western", Ratings: 3.0, PriceRange: ip(3)},
		{ID: 4, Name: "Mekong Pub", Tag: "pub", Ratings: 4.0, PriceRange: ip(1), Latitude: fp(11.60), Longitude: fp(104.90)},
	}
}

func names(rs []catalog.Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestRankDefaultIsNameAscendingCaseInsensitive(t *testing.T) {
	got := names(catalog.Rank(fixtures(), catalog.RankQuery{}))
	want := []string{"angkor kitchen", "Brooklyn Grill", "Mekong Pub", "Zen Garden"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q (full order %v)", i, want[i], got[i], got)
		}
	}
}

func TestRankRatingsDescendingWithNameTiebreak(t *testing.T) {
	got := names(catalog.Rank(fixtures(), catalog.RankQuery{Sort: catalog.SortRatings}))
	// Two records share 4.5; the tie breaks by name ascending.
	want := []string{"angkor kitchen", "Zen Garden", "Mekong Pub", "Brooklyn Grill"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q (full order %v)", i, want[i], got[i], got)
		}
	}
}

func TestRankDistancePutsUnknownCoordinatesLast(t *testing.T) {
	q := catalog.RankQuery{Sort: catalog.SortDistance, UserLat: fp(11.5564), UserLng: fp(104.9282)}
	got := catalog.Rank(fixtures(), q)
	if got[len(got)-1].Name != "Brooklyn Grill" {
		t.Fatalf("record without coordinates should sort last, got order %v", names(got))
	}
	if got[len(got)-1].DistanceKm != nil {
		t.Fatal("record without coordinates should have nil distance")
	}
	for i := 1; i < len(got)-1; i++ {
		if *got[i-1].DistanceKm > *got[i].DistanceKm {
			t.Fatalf("distances not ascending: %v", names(got))
		}
	}
}

func TestRankDistanceWithoutOriginFallsBackToNameOrder(t *testing.T) {
	got := names(catalog.Rank(fixtures(), catalog.RankQuery{Sort: catalog.SortDistance}))
	want := []string{"angkor kitchen", "Brooklyn Grill", "Mekong Pub", "Zen Garden"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q (full order %v)", i, want[i], got[i], got)
		}
	}
	for _, r := range catalog.Rank(fixtures(), catalog.RankQuery{Sort: catalog.SortDistance}) {
		if r.DistanceKm != nil {
			t.Fatal("no origin means no distances")
		}
	}
}

func TestRankDistanceRoundedToThreeDecimals(t *testing.T) {
	q := catalog.RankQuery{UserLat: fp(11.5564), UserLng: fp(104.9282)}
	for _, r := range catalog.Rank(fixtures(), q) {
		if r.DistanceKm == nil {
			continue
		}
		scaled := *r.DistanceKm * 1000
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("distance %v not rounded to 3 decimals", *r.DistanceKm)
		}
	}
}

func TestRankFiltersAreConjunctive(t *testing.T) {
	got := catalog.Rank(fixtures(), catalog.RankQuery{PriceRange: ip(3), Tag: "JAPANESE"})
	if len(got) != 1 || got[0].Name != "Zen Garden" {
		t.Fatalf("expected only Zen Garden, got %v", names(got))
	}
	if got := catalog.Rank(fixtures(), catalog.RankQuery{PriceRange: ip(3), Tag: "khmer"}); len(got) != 0 {
		t.Fatalf("price 3 + khmer matches nothing, got %v", names(got))
	}
}

func TestTagCountsReportEveryKnownTag(t *testing.T) {
	counts := catalog.TagCounts(fixtures())
	if len(counts) != len(catalog.Tags) {
		t.Fatalf("expected %d entries, got %d", len(catalog.Tags), len(counts))
	}
	for _, tag := range catalog.Tags {
		if _, ok := counts[tag]; !ok {
			t.Fatalf("missing tag %q", tag)
		}
	}
	if counts["khmer"] != 1 || counts["asian"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestTagCountsIgnoreUnknownTags(t *testing.T) {
	counts := catalog.TagCounts([]model.Restaurant{{Name: "X", Tag: "fusion"}})
	for tag, n := range counts {
		if n != 0 {
			t.Fatalf("unknown tag should not be counted, got %s=%d", tag, n)
		}
	}
}
