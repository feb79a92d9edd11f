// Package catalog answers the public dashboard queries: filtered, sorted and
// distance-enriched restaurant lists with per-tag counts, plus single-venue
// details with menu.
package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/nightbite/restaurant-booking/internal/geo"
	"github.com/nightbite/restaurant-booking/internal/model"
)

// Tags is the fixed vocabulary of restaurant labels. Tag counts always
// report every entry, defaulting to 0.
var Tags = []string{"asian", "western", "khmer", "japanese", "korean", "pub", "club", "bar"}

// Sort modes accepted by Rank. Anything else falls back to name order.
const (
	SortRatings  = "ratings"
	SortDistance = "distance"
)

// RankQuery carries the dashboard's filter and sort parameters. PriceRange
// and the origin coordinates are optional; Tag is ignored when empty.
type RankQuery struct {
	PriceRange *int
	Tag        string
	Sort       string
	UserLat    *float64
	UserLng    *float64
}

// Ranked is a restaurant plus its computed distance from the query origin.
// DistanceKm is nil when either the record or the origin lacks valid
// coordinates.
type Ranked struct {
	model.Restaurant
	DistanceKm *float64 `json:"distance_km"`
}

// Rank filters, enriches and orders records for the dashboard. Price and tag
// filters are conjunctive; the tag comparison is case-insensitive. Every
// returned record carries a distance when it can be computed. Sort modes:
// ratings (descending, ties by name), distance (ascending, unknown distances
// last) and the default name ascending, compared case-insensitively.
func Rank(items []model.Restaurant, q RankQuery) []Ranked {
	out := make([]Ranked, 0, len(items))
	for _, r := range items {
		if q.PriceRange != nil {
			if r.PriceRange == nil || *r.PriceRange != *q.PriceRange {
				continue
			}
		}
		if q.Tag != "" && !strings.EqualFold(r.Tag, q.Tag) {
			continue
		}
		out = append(out, Ranked{Restaurant: r, DistanceKm: distanceFrom(&r, q.UserLat, q.UserLng)})
	}

	switch q.Sort {
	case SortRatings:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Ratings != out[j].Ratings {
				return out[i].Ratings > out[j].Ratings
			}
			return nameLess(out[i].Name, out[j].Name)
		})
	case SortDistance:
		// Distance order needs an origin; without one the mode degrades to
		// the default name ordering.
		if q.UserLat != nil && q.UserLng != nil {
			bubbleSortByDistance(out)
		} else {
			sort.SliceStable(out, func(i, j int) bool {
				return nameLess(out[i].Name, out[j].Name)
			})
		}
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return nameLess(out[i].Name, out[j].Name)
		})
	}
	return out
}

// TagCounts counts how many of the given records carry each recognized tag.
// Callers pass the price-filtered set so the sidebar counts track the active
// price filter. Unknown tags are ignored; absent tags report 0.
func TagCounts(items []model.Restaurant) map[string]int {
	counts := make(map[string]int, len(Tags))
	for _, t := range Tags {
		counts[t] = 0
	}
	for _, r := range items {
		tag := strings.ToLower(strings.TrimSpace(r.Tag))
		if _, ok := counts[tag]; ok {
			counts[tag]++
		}
	}
	return counts
}

// distanceFrom computes the distance between a record and the origin,
// rounded to three decimals, or nil when either side lacks coordinates.
func distanceFrom(r *model.Restaurant, userLat, userLng *float64) *float64 {
	if userLat == nil || userLng == nil || !r.HasLocation() {
		return nil
	}
	d := geo.DistanceKm(*userLat, *userLng, *r.Latitude, *r.Longitude)
	d = math.Round(d*1000) / 1000
	return &d
}

// bubbleSortByDistance orders records ascending by distance, treating an
// unknown distance as +Inf so those records land at the end. Bubble sort is
// used deliberately: it is stable, the catalog is small, and swapping it for
// an unstable algorithm would reorder equal-distance records.
func bubbleSortByDistance(items []Ranked) {
	n := len(items)
	for {
		swapped := false
		for i := 1; i < n; i++ {
			if distanceKey(items[i-1]) > distanceKey(items[i]) {
				items[i-1], items[i] = items[i], items[i-1]
				swapped = true
			}
		}
		n--
		if !swapped || n <= 1 {
			break
		}
	}
}

func distanceKey(r Ranked) float64 {
	if r.DistanceKm == nil {
		return math.Inf(1)
	}
	return *r.DistanceKm
}

func nameLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
