package repository

import (
	"context"
	"database/sql"

	"github.com/nightbite/restaurant-booking/internal/model"
)

// EventRepo provides data access to the events table.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// ListWithRestaurant returns all events joined with their hosting
// restaurant's name and cover image, soonest first.
func (r *EventRepo) ListWithRestaurant(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.restaurant_id, e.event_name, COALESCE(e.event_description, ''),
		        e.event_datetime, rs.name, COALESCE(i.image_url, '')
		 FROM events e
		 JOIN restaurants rs ON rs.id = e.restaurant_id
		 LEFT JOIN (
			SELECT restaurant_id, MIN(id) AS first_id
			FROM restaurant_images GROUP BY restaurant_id
		 ) fi ON fi.restaurant_id = rs.id
		 LEFT JOIN restaurant_images i ON i.id = fi.first_id
		 ORDER BY e.event_datetime ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var img string
		if err := rows.Scan(&ev.ID, &ev.RestaurantID, &ev.Name, &ev.Description,
			&ev.Datetime, &ev.RestaurantName, &img); err != nil {
			return nil, err
		}
		ev.ImageURL = model.PublicImageURL(img)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts an event and populates its generated id.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (event_name, event_description, event_datetime, restaurant_id)
		 VALUES (?, ?, ?, ?)`,
		ev.Name, ev.Description, ev.Datetime, ev.RestaurantID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Delete removes an event by id or returns ErrEventNotFound.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
