package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nightbite/restaurant-booking/internal/geo"
	"github.com/nightbite/restaurant-booking/internal/model"
)

// RestaurantRepo provides data access to the restaurants and
// restaurant_images tables. Rows are converted into model.Restaurant values
// at this boundary: coordinates are normalized (swapped when entered in the
// wrong order, dropped when invalid), ratings clamped into [0,5], price
// ranges outside [1,4] treated as unset, and image references rewritten to
// public URLs. Nothing above this layer sees a raw row.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// selectColumns is shared by every query that produces full restaurant rows.
// The first image per restaurant is joined in so listings need no follow-up
// query per row.
const selectColumns = `
	SELECT r.id, r.name, COALESCE(r.description, ''), COALESCE(r.address, ''),
	       r.latitude, r.longitude, r.price_range, COALESCE(r.tag, ''),
	       COALESCE(r.ratings, 0), COALESCE(i.image_url, '')
	FROM restaurants r
	LEFT JOIN (
		SELECT restaurant_id, MIN(id) AS first_id
		FROM restaurant_images GROUP BY restaurant_id
	) fi ON fi.restaurant_id = r.id
	LEFT JOIN restaurant_images i ON i.id = fi.first_id`

// scanRestaurant converts one row into a model.Restaurant.
func scanRestaurant(scan func(dest ...any) error) (*model.Restaurant, error) {
	var (
		r     model.Restaurant
		lat   sql.NullFloat64
		lng   sql.NullFloat64
		price sql.NullInt64
		tag   string
		img   string
	)
	if err := scan(&r.ID, &r.Name, &r.Description, &r.Address,
		&lat, &lng, &price, &tag, &r.Ratings, &img); err != nil {
		return nil, err
	}
	var latPtr, lngPtr *float64
	if lat.Valid {
		latPtr = &lat.Float64
	}
	if lng.Valid {
		lngPtr = &lng.Float64
	}
	r.Latitude, r.Longitude = geo.NormalizeCoords(latPtr, lngPtr)
	if price.Valid && model.ValidPriceRange(int(price.Int64)) {
		p := int(price.Int64)
		r.PriceRange = &p
	}
	r.Tag = strings.ToLower(strings.TrimSpace(tag))
	r.Ratings = model.ClampRating(r.Ratings)
	r.ImageURL = model.PublicImageURL(img)
	return &r, nil
}

// Get returns a single restaurant by id or ErrRestaurantNotFound.
func (r *RestaurantRepo) Get(ctx context.Context, id uint64) (*model.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE r.id = ?`, id)
	res, err := scanRestaurant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// List returns restaurants ordered by name ascending, optionally restricted
// to one price range.
func (r *RestaurantRepo) List(ctx context.Context, priceRange *int) ([]model.Restaurant, error) {
	q := selectColumns
	args := []any{}
	if priceRange != nil {
		q += ` WHERE r.price_range = ?`
		args = append(args, *priceRange)
	}
	q += ` ORDER BY r.name ASC`
	return r.queryMany(ctx, q, args...)
}

// SearchByName returns restaurants whose name contains the term,
// case-insensitively, ordered by name ascending.
func (r *RestaurantRepo) SearchByName(ctx context.Context, term string) ([]model.Restaurant, error) {
	q := selectColumns + ` WHERE LOWER(r.name) LIKE LOWER(?) ORDER BY r.name ASC`
	return r.queryMany(ctx, q, "%"+term+"%")
}

func (r *RestaurantRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Restaurant{}
	for rows.Next() {
		rec, err := scanRestaurant(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a restaurant or returns the id of an existing row with the
// same name and address, so re-submitting the admin form does not duplicate
// a venue. Image URLs, when given, replace the restaurant's image set.
func (r *RestaurantRepo) Create(ctx context.Context, rec *model.Restaurant, imageURLs []string) (uint64, error) {
	var existing uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM restaurants WHERE name = ? AND address = ?`,
		rec.Name, rec.Address,
	).Scan(&existing)
	switch {
	case err == nil:
		rec.ID = existing
	case err == sql.ErrNoRows:
		res, insErr := r.db.ExecContext(ctx,
			`INSERT INTO restaurants (name, description, address, latitude, longitude, price_range, tag)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.Name, rec.Description, rec.Address,
			rec.Latitude, rec.Longitude, rec.PriceRange, nullIfEmpty(rec.Tag),
		)
		if insErr != nil {
			return 0, insErr
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			return 0, idErr
		}
		rec.ID = uint64(id)
	default:
		return 0, err
	}
	if len(imageURLs) > 0 {
		if err := r.ReplaceImages(ctx, rec.ID, imageURLs); err != nil {
			return 0, err
		}
	}
	return rec.ID, nil
}

// Update rewrites the editable fields of a restaurant and replaces its image
// set when URLs are supplied. Returns ErrRestaurantNotFound when the id does
// not exist.
func (r *RestaurantRepo) Update(ctx context.Context, rec *model.Restaurant, imageURLs []string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE restaurants
		 SET name = ?, description = ?, address = ?, latitude = ?, longitude = ?, price_range = ?, tag = ?
		 WHERE id = ?`,
		rec.Name, rec.Description, rec.Address,
		rec.Latitude, rec.Longitude, rec.PriceRange, nullIfEmpty(rec.Tag), rec.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 affected rows for no-op updates too, so confirm
		// the row is actually missing before failing.
		var one int
		if selErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurants WHERE id = ?`, rec.ID).Scan(&one); selErr == sql.ErrNoRows {
			return ErrRestaurantNotFound
		} else if selErr != nil {
			return selErr
		}
	}
	if len(imageURLs) > 0 {
		return r.ReplaceImages(ctx, rec.ID, imageURLs)
	}
	return nil
}

// ReplaceImages swaps the restaurant's image references atomically.
func (r *RestaurantRepo) ReplaceImages(ctx context.Context, id uint64, urls []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurant_images WHERE restaurant_id = ?`, id); err != nil {
		return err
	}
	for _, u := range urls {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO restaurant_images (restaurant_id, image_url) VALUES (?, ?)`, id, u); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a restaurant and its image references.
func (r *RestaurantRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurant_images WHERE restaurant_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}
	return tx.Commit()
}

// SetRating stores a rating. Callers clamp the value first; the column
// constraint is the last line of defense.
func (r *RestaurantRepo) SetRating(ctx context.Context, id uint64, rating float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE restaurants SET ratings = ? WHERE id = ?`, rating, id)
	return err
}

// nullIfEmpty maps "" to NULL so optional text columns stay NULL instead of
// collecting empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
