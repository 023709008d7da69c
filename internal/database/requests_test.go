package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{
		Description: "need a drill",
		OwnerID:     user.ID,
		Created:     time.Now(),
	}
	require.NoError(t, db.CreateRequest(ctx, request))
	assert.NotZero(t, request.ID)

	got, err := db.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", got.Description)
	assert.Equal(t, user.ID, got.OwnerID)
}

func TestGetRequest_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetRequest(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRequestsByOwner_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Requester", "req@example.com")

	older := &models.ItemRequest{Description: "older", OwnerID: user.ID, Created: time.Now().Add(-time.Hour)}
	require.NoError(t, db.CreateRequest(ctx, older))
	newer := &models.ItemRequest{Description: "newer", OwnerID: user.ID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, newer))

	requests, err := db.ListRequestsByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "newer", requests[0].Description)
	assert.Equal(t, "older", requests[1].Description)
}

func TestListRequestsFromOthers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	viewer := createTestUser(t, db, "Viewer", "viewer@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	mine := &models.ItemRequest{Description: "mine", OwnerID: viewer.ID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, mine))
	theirs := &models.ItemRequest{Description: "theirs", OwnerID: other.ID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, theirs))

	requests, err := db.ListRequestsFromOthers(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "theirs", requests[0].Description)
}
