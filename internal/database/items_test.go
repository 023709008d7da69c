package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")

	item := &models.Item{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Nil(t, got.RequestID)
}

func TestGetItem_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetItem(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateItem_WithRequestID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requester := createTestUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{Description: "need a drill", OwnerID: requester.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
		OwnerID:     owner.ID,
		RequestID:   &request.ID,
	}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, request.ID, *got.RequestID)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	item.Name = "Hammer drill"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", got.Name)
	assert.False(t, got.Available)
}

func TestListItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	createTestItem(t, db, owner.ID, "Drill", true)
	createTestItem(t, db, owner.ID, "Saw", true)
	createTestItem(t, db, other.ID, "Ladder", true)

	items, err := db.ListItemsByOwner(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Drill", items[0].Name)
	assert.Equal(t, "Saw", items[1].Name)
}

func TestSearchAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")

	drill := &models.Item{Name: "Cordless Drill", Description: "with batteries", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, drill))

	hidden := &models.Item{Name: "Broken drill", Description: "do not lend", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, hidden))

	byDescription := &models.Item{Name: "Toolbox", Description: "includes a DRILL bit set", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, byDescription))

	items, err := db.SearchAvailableItems(ctx, "dRiLl", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	names := []string{items[0].Name, items[1].Name}
	assert.Contains(t, names, "Cordless Drill")
	assert.Contains(t, names, "Toolbox")
}

func TestListItemsByRequestIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requester := createTestUser(t, db, "Requester", "req@example.com")

	first := &models.ItemRequest{Description: "need a drill", OwnerID: requester.ID}
	require.NoError(t, db.CreateRequest(ctx, first))
	second := &models.ItemRequest{Description: "need a saw", OwnerID: requester.ID}
	require.NoError(t, db.CreateRequest(ctx, second))

	require.NoError(t, db.CreateItem(ctx, &models.Item{
		Name: "Drill", Description: "d", Available: true, OwnerID: owner.ID, RequestID: &first.ID,
	}))
	require.NoError(t, db.CreateItem(ctx, &models.Item{
		Name: "Saw", Description: "s", Available: true, OwnerID: owner.ID, RequestID: &second.ID,
	}))
	createTestItem(t, db, owner.ID, "Unrelated", true)

	items, err := db.ListItemsByRequestIDs(ctx, []int64{first.ID, second.ID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = db.ListItemsByRequestIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
