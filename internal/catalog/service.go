package catalog

import (
	"context"

	"github.com/nightbite/restaurant-booking/internal/model"
)

// RestaurantSource is the slice of the persistence layer the catalog needs.
// *repository.RestaurantRepo satisfies it; tests supply fakes.
type RestaurantSource interface {
	// List returns restaurants, optionally filtered by price range in the
	// query, ordered by name ascending.
	List(ctx context.Context, priceRange *int) ([]model.Restaurant, error)
	// Get returns a single restaurant or repository.ErrRestaurantNotFound.
	Get(ctx context.Context, id uint64) (*model.Restaurant, error)
	// SearchByName returns restaurants whose name contains the term,
	// case-insensitively, ordered by name.
	SearchByName(ctx context.Context, term string) ([]model.Restaurant, error)
	// SetRating stores an already clamped rating.
	SetRating(ctx context.Context, id uint64, rating float64) error
}

// MenuSource lists the menu of one restaurant.
type MenuSource interface {
	ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error)
}

// Service composes the persistence layer with the in-memory ranker.
type Service struct {
	restaurants RestaurantSource
	menu        MenuSource
}

// NewService returns a Service over the given sources.
func NewService(restaurants RestaurantSource, menu MenuSource) *Service {
	return &Service{restaurants: restaurants, menu: menu}
}

// ListForDashboard fetches the price-filtered records once, ranks them per
// the query and counts tags over the same price-filtered set, so the counts
// ignore the tag filter but honor the price filter.
func (s *Service) ListForDashboard(ctx context.Context, q RankQuery) ([]Ranked, map[string]int, error) {
	items, err := s.restaurants.List(ctx, q.PriceRange)
	if err != nil {
		return nil, nil, err
	}
	return Rank(items, q), TagCounts(items), nil
}

// Search returns name matches without distance enrichment, mirroring the
// dashboard's search box.
func (s *Service) Search(ctx context.Context, term string) ([]model.Restaurant, error) {
	return s.restaurants.SearchByName(ctx, term)
}

// Details returns one restaurant and its menu items, or the repository's
// not-found error.
func (s *Service) Details(ctx context.Context, id uint64) (*model.Restaurant, []model.MenuItem, error) {
	r, err := s.restaurants.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	menu, err := s.menu.ListByRestaurant(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return r, menu, nil
}

// UpdateRating clamps the rating into [0,5] and persists it, returning the
// stored value. The restaurant must exist.
func (s *Service) UpdateRating(ctx context.Context, id uint64, rating float64) (float64, error) {
	if _, err := s.restaurants.Get(ctx, id); err != nil {
		return 0, err
	}
	clamped := model.ClampRating(rating)
	if err := s.restaurants.SetRating(ctx, id, clamped); err != nil {
		return 0, err
	}
	return clamped, nil
}
