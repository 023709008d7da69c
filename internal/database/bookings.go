package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingJoin = `
        SELECT b.id, b.start_time, b.end_time, b.status,
               i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
               u.id, u.name, u.email
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var item models.Item
	var booker models.User
	var requestID sql.NullInt64

	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID,
		&booker.ID, &booker.Name, &booker.Email,
	)
	if err != nil {
		return nil, err
	}

	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}
	b.Item = &item
	b.Booker = &booker
	b.ItemID = item.ID
	b.BookerID = booker.ID

	return &b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status) VALUES (?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := bookingJoin + ` WHERE b.id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusFrom moves a booking from the expected status to the
// next one. The precondition makes the transition atomic per booking id.
func (db *DB) UpdateBookingStatusFrom(ctx context.Context, id int64, expected, next string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`

	result, err := db.ExecContext(ctx, query, next, id, expected)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func statePredicate(state models.State, now time.Time) (string, []any) {
	switch state {
	case models.StateCurrent:
		return ` AND b.start_time <= ? AND b.end_time >= ?`, []any{now.UTC(), now.UTC()}
	case models.StatePast:
		return ` AND b.end_time < ?`, []any{now.UTC()}
	case models.StateFuture:
		return ` AND b.start_time > ?`, []any{now.UTC()}
	case models.StateWaiting, models.StateRejected:
		return ` AND b.status = ?`, []any{string(state)}
	default:
		return ``, nil
	}
}

// ListBookingsByBooker returns bookings made by the user, filtered by state,
// ordered by start descending.
func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error) {
	predicate, args := statePredicate(state, now)
	query := bookingJoin + ` WHERE b.booker_id = ?` + predicate + ` ORDER BY b.start_time DESC LIMIT ? OFFSET ?`

	queryArgs := append([]any{bookerID}, args...)
	queryArgs = append(queryArgs, limit, offset)
	return db.queryBookings(ctx, query, queryArgs...)
}

// ListBookingsByOwner returns bookings of items owned by the user, filtered
// by state, ordered by start descending.
func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error) {
	predicate, args := statePredicate(state, now)
	query := bookingJoin + ` WHERE i.owner_id = ?` + predicate + ` ORDER BY b.start_time DESC LIMIT ? OFFSET ?`

	queryArgs := append([]any{ownerID}, args...)
	queryArgs = append(queryArgs, limit, offset)
	return db.queryBookings(ctx, query, queryArgs...)
}

// LastBookingForItem returns the approved booking with the latest start
// before now, or nil when the item has none.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingJoin + `
        WHERE b.item_id = ? AND b.status = ? AND b.start_time < ?
        ORDER BY b.start_time DESC LIMIT 1`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, models.StatusApproved, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

// NextBookingForItem returns the approved booking with the earliest start at
// or after now, or nil when the item has none.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingJoin + `
        WHERE b.item_id = ? AND b.status = ? AND b.start_time >= ?
        ORDER BY b.start_time ASC LIMIT 1`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, models.StatusApproved, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// HasFinishedBooking reports whether the user has a booking of the item that
// ended strictly before now.
func (db *DB) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND end_time < ?)`

	var exists bool
	if err := db.QueryRowContext(ctx, query, itemID, bookerID, now.UTC()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return exists, nil
}

// ListBookingsByDateRange returns bookings starting inside [start, end],
// ordered by start ascending. Used by the export report.
func (db *DB) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	query := bookingJoin + ` WHERE b.start_time >= ? AND b.start_time <= ? ORDER BY b.start_time`

	return db.queryBookings(ctx, query, start.UTC(), end.UTC())
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
