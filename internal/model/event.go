package model

// Event is a one-off happening hosted by a restaurant (live music, tasting
// night). The datetime is an opaque local string, same convention as
// bookings.
//
// Fields:
//
//	ID             – primary key identifier.
//	RestaurantID   – hosting restaurant.
//	Name           – event title.
//	Description    – free-form description.
//	Datetime       – scheduled date and time as entered.
//	RestaurantName – joined restaurants.name, populated on list queries.
//	ImageURL       – cover image of the hosting restaurant, empty when none.
type Event struct {
	ID             uint64 `json:"id"`              // events.id
	RestaurantID   uint64 `json:"restaurant_id"`   // events.restaurant_id
	Name           string `json:"name"`            // events.event_name
	Description    string `json:"description"`     // events.event_description
	Datetime       string `json:"datetime"`        // events.event_datetime
	RestaurantName string `json:"restaurant_name"` // restaurants.name (join)
	ImageURL       string `json:"image_url"`       // restaurant cover image (join)
}
