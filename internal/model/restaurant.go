package model

// Restaurant represents a venue on the public dashboard. Coordinates are
// optional: rows recorded without a usable (latitude, longitude) pair carry
// nil for both components and are excluded from distance ranking. Ratings
// are always kept inside [0,5] and the price range, when present, inside
// [1,4].
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – display name.
//	Description – free-form description.
//	Address     – street address entered by the admin.
//	Latitude    – latitude in degrees, nil when unknown or invalid.
//	Longitude   – longitude in degrees, nil when unknown or invalid.
//	PriceRange  – relative cost level 1..4, nil when unset.
//	Tag         – one of the fixed vocabulary labels, empty when unset.
//	Ratings     – average rating, 0.0 when never rated.
//	ImageURL    – public URL of the cover image, empty when none.
type Restaurant struct {
	ID          uint64   `json:"id"`           // restaurants.id
	Name        string   `json:"name"`         // restaurants.name
	Description string   `json:"description"`  // restaurants.description
	Address     string   `json:"address"`      // restaurants.address
	Latitude    *float64 `json:"latitude"`     // restaurants.latitude (nullable)
	Longitude   *float64 `json:"longitude"`    // restaurants.longitude (nullable)
	PriceRange  *int     `json:"price_range"`  // restaurants.price_range (nullable)
	Tag         string   `json:"tag"`          // restaurants.tag, lower-cased
	Ratings     float64  `json:"ratings"`      // restaurants.ratings
	ImageURL    string   `json:"image_url"`    // first restaurant_images.image_url
}

// HasLocation reports whether the restaurant carries a usable coordinate
// pair.
func (r *Restaurant) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ClampRating forces a rating into the [0,5] range. Out-of-range input is
// clamped, never rejected, so a stored rating can always be trusted.
func ClampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// ValidPriceRange reports whether a price tier value is inside [1,4].
func ValidPriceRange(v int) bool { return v >= 1 && v <= 4 }
