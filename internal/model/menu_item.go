package model

// MenuItem is a single dish or drink offered by a restaurant. Price is
// never negative; the repository rejects negative values on insert.
//
// Fields:
//
//	ID           – primary key identifier.
//	RestaurantID – owning restaurant.
//	ItemName     – display name of the item.
//	Description  – free-form description.
//	Price        – price in the venue's currency, >= 0.
//	ImageURL     – public URL of the item photo, empty when none.
type MenuItem struct {
	ID           uint64  `json:"id"`            // menu_items.id
	RestaurantID uint64  `json:"restaurant_id"` // menu_items.restaurant_id
	ItemName     string  `json:"item_name"`     // menu_items.item_name
	Description  string  `json:"description"`   // menu_items.description
	Price        float64 `json:"price"`         // menu_items.price
	ImageURL     string  `json:"image_url"`     // menu_items.image_url
}
