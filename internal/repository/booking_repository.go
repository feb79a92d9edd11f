package repository

import (
	"context"
	"database/sql"

	"github.com/nightbite/restaurant-booking/internal/model"
)

// BookingRepo provides data access to the bookings table. The order_id
// column carries a unique index; a generated reference that collides is
// rejected by the database rather than silently overwritten.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and populates its generated id.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (order_id, restaurant_id, number_of_guests, booking_datetime, status)
		 VALUES (?, ?, ?, ?, ?)`,
		b.OrderRef, b.RestaurantID, b.Guests, b.BookingDatetime, b.Status,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// List returns every booking, newest first. Used by the admin dashboard.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, restaurant_id, number_of_guests, booking_datetime, status, created_at
		 FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.OrderRef, &b.RestaurantID, &b.Guests,
			&b.BookingDatetime, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a booking to the given status or returns
// ErrBookingNotFound. Status values are validated by the handler against the
// model constants.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if selErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); selErr == sql.ErrNoRows {
			return ErrBookingNotFound
		} else if selErr != nil {
			return selErr
		}
	}
	return nil
}

// DeleteAll removes every booking. Gated behind an explicit confirmation in
// the handler.
func (r *BookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
