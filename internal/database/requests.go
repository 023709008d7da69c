package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (owner_id, description, created) VALUES (?, ?, ?)`

	result, err := db.ExecContext(ctx, query, request.OwnerID, request.Description, request.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id

	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, owner_id, description, created FROM requests WHERE id = ?`

	var request models.ItemRequest
	err := db.QueryRowContext(ctx, query, id).Scan(&request.ID, &request.OwnerID, &request.Description, &request.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return &request, nil
}

func (db *DB) ListRequestsByOwner(ctx context.Context, ownerID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, owner_id, description, created FROM requests WHERE owner_id = ? ORDER BY created DESC`

	return db.queryRequests(ctx, query, ownerID)
}

// ListRequestsFromOthers returns requests not owned by the viewer, newest
// first.
func (db *DB) ListRequestsFromOthers(ctx context.Context, viewerID int64, limit, offset int) ([]models.ItemRequest, error) {
	query := `SELECT id, owner_id, description, created FROM requests
        WHERE owner_id <> ? ORDER BY created DESC LIMIT ? OFFSET ?`

	return db.queryRequests(ctx, query, viewerID, limit, offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ItemRequest
	for rows.Next() {
		var r models.ItemRequest
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Description, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
