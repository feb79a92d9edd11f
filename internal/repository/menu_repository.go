package repository

import (
	"context"
	"database/sql"

	"github.com/nightbite/restaurant-booking/internal/model"
)

// MenuRepo provides data access to the menu_items table.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// ListByRestaurant returns a restaurant's menu ordered by item name.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, restaurant_id, item_name, COALESCE(description, ''), price, COALESCE(image_url, '')
		 FROM menu_items WHERE restaurant_id = ? ORDER BY item_name ASC`,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MenuItem{}
	for rows.Next() {
		var m model.MenuItem
		var img string
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.ItemName, &m.Description, &m.Price, &img); err != nil {
			return nil, err
		}
		m.ImageURL = model.PublicImageURL(img)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every menu item. Used by the admin dashboard aggregate.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, restaurant_id, item_name, COALESCE(description, ''), price, COALESCE(image_url, '')
		 FROM menu_items ORDER BY restaurant_id, item_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MenuItem{}
	for rows.Next() {
		var m model.MenuItem
		var img string
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.ItemName, &m.Description, &m.Price, &img); err != nil {
			return nil, err
		}
		m.ImageURL = model.PublicImageURL(img)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a menu item and populates its generated id. A negative
// price is rejected with ErrNegativePrice before touching the database.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	if m.Price < 0 {
		return ErrNegativePrice
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO menu_items (item_name, description, price, image_url, restaurant_id)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ItemName, m.Description, m.Price, nullIfEmpty(m.ImageURL), m.RestaurantID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Delete removes a menu item by id or returns ErrMenuItemNotFound.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
