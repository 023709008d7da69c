package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_AddItem(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")

	available := true
	item, err := svc.AddItem(ctx, owner.ID, NewItem{Name: "Drill", Description: "Cordless", Available: &available})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)
	assert.NotNil(t, item.Comments)
}

func TestItemService_AddItem_Validation(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	available := true

	tests := []struct {
		name string
		in   NewItem
	}{
		{"blank name", NewItem{Name: "  ", Description: "d", Available: &available}},
		{"blank description", NewItem{Name: "Drill", Description: "", Available: &available}},
		{"nil available", NewItem{Name: "Drill", Description: "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, owner.ID, tt.in)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestItemService_AddItem_UnknownOwnerOrRequest(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	available := true

	var notFound *NotFoundError

	_, err := svc.AddItem(ctx, 999, NewItem{Name: "Drill", Description: "d", Available: &available})
	require.ErrorAs(t, err, &notFound)

	missingRequest := int64(999)
	_, err = svc.AddItem(ctx, owner.ID, NewItem{Name: "Drill", Description: "d", Available: &available, RequestID: &missingRequest})
	require.ErrorAs(t, err, &notFound)
}

func TestItemService_UpdateItem_OwnershipRequired(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	other := seedUser(t, db, "Other", "other@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	name := "Stolen drill"
	_, err := svc.UpdateItem(ctx, other.ID, item.ID, ItemPatch{Name: &name})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestItemService_UpdateItem_PartialPatch(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	available := false
	updated, err := svc.UpdateItem(ctx, owner.ID, item.ID, ItemPatch{Available: &available})
	require.NoError(t, err)
	assert.Equal(t, "Drill", updated.Name)
	assert.False(t, updated.Available)
}

func TestItemService_GetItem_OwnerSeesBookings(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	booker := seedUser(t, db, "Booker", "booker@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	now := time.Now()
	last := seedBooking(t, db, item.ID, booker.ID, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusApproved)
	next := seedBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusApproved)

	details, err := svc.GetItem(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, details.LastBooking)
	require.NotNil(t, details.NextBooking)
	assert.Equal(t, last.ID, details.LastBooking.ID)
	assert.Equal(t, next.ID, details.NextBooking.ID)

	// Other viewers get the item without the booking refs.
	details, err = svc.GetItem(ctx, booker.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, details.LastBooking)
	assert.Nil(t, details.NextBooking)
}

func TestItemService_SearchAvailableItems(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	seedItem(t, db, owner.ID, "Cordless Drill", true)
	seedItem(t, db, owner.ID, "Hand saw", true)

	items, err := svc.SearchAvailableItems(ctx, "drill", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cordless Drill", items[0].Name)
}

func TestItemService_SearchAvailableItems_BlankText(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)

	items, err := svc.SearchAvailableItems(context.Background(), "   ", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestItemService_SearchUsesCache(t *testing.T) {
	db, logger := newTestDB(t)
	cache := repository.NewMemoryCache(time.Minute)
	svc := NewItemService(db, cache, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	item := seedItem(t, db, owner.ID, "Cordless Drill", true)

	items, err := svc.SearchAvailableItems(ctx, "drill", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Mutating the row behind the cache's back leaves the cached result.
	item.Name = "Renamed"
	require.NoError(t, db.UpdateItem(ctx, item))

	items, err = svc.SearchAvailableItems(ctx, "drill", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cordless Drill", items[0].Name)

	// An item write through the service invalidates the cache.
	name := "Renamed"
	_, err = svc.UpdateItem(ctx, owner.ID, item.ID, ItemPatch{Name: &name})
	require.NoError(t, err)

	items, err = svc.SearchAvailableItems(ctx, "drill", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Renamed", items[0].Name)
}

func TestItemService_AddComment_RequiresFinishedBooking(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	booker := seedUser(t, db, "Booker", "booker@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	// No booking yet.
	_, err := svc.AddComment(ctx, booker.ID, item.ID, NewComment{Text: "nice"})
	var badRequest *BadRequestError
	require.ErrorAs(t, err, &badRequest)

	// An ongoing booking is not enough.
	now := time.Now()
	seedBooking(t, db, item.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	_, err = svc.AddComment(ctx, booker.ID, item.ID, NewComment{Text: "nice"})
	require.ErrorAs(t, err, &badRequest)

	// A finished one is.
	seedBooking(t, db, item.ID, booker.ID, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusApproved)
	comment, err := svc.AddComment(ctx, booker.ID, item.ID, NewComment{Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "Booker", comment.AuthorName)

	details, err := svc.GetItem(ctx, booker.ID, item.ID)
	require.NoError(t, err)
	require.Len(t, details.Comments, 1)
	assert.Equal(t, "nice", details.Comments[0].Text)
}

func TestItemService_AddComment_BlankText(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)

	owner := seedUser(t, db, "Owner", "owner@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	_, err := svc.AddComment(context.Background(), owner.ID, item.ID, NewComment{Text: "  "})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestItemService_ListItemsByOwner(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewItemService(db, nil, nil, logger)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	seedItem(t, db, owner.ID, "Drill", true)
	seedItem(t, db, owner.ID, "Saw", false)

	items, err := svc.ListItemsByOwner(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Drill", items[0].Name)
}
