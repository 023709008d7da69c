package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	cache    domain.Cache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

// NewItemService constructs the item service. cache and eventBus may be nil.
func NewItemService(repo domain.Repository, cache domain.Cache, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, cache: cache, eventBus: eventBus, logger: logger}
}

// NewItem is the item creation payload.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ItemPatch applies only the fields present in the request body.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// NewComment is the comment creation payload.
type NewComment struct {
	Text string `json:"text"`
}

func (s *ItemService) AddItem(ctx context.Context, ownerID int64, in NewItem) (*models.ItemDetails, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be blank"}
	}
	if in.Available == nil {
		return nil, &ValidationError{Field: "available", Reason: "must not be null"}
	}

	if in.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *in.RequestID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, notFoundf("request with id = %d not found", *in.RequestID)
			}
			return nil, err
		}
	}

	owner, err := s.repo.GetUser(ctx, ownerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", ownerID)
	}
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     owner.ID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")

	return &models.ItemDetails{Item: *item, Comments: []models.Comment{}}, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch ItemPatch) (*models.ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("item with id = %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.repo.GetUser(ctx, ownerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", ownerID)
	}
	if err != nil {
		return nil, err
	}

	// Non-owners get not-found, not forbidden, to avoid leaking existence.
	if owner.ID != item.OwnerID {
		return nil, notFoundf("user with id = %d does not own item with id = %d", ownerID, itemID)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)

	return &models.ItemDetails{Item: *item, Comments: []models.Comment{}}, nil
}

func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("item with id = %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}

	return s.enrichItem(ctx, viewerID, item)
}

func (s *ItemService) ListItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemDetails, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for i := range items {
		d, err := s.enrichItem(ctx, ownerID, &items[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// SearchAvailableItems matches case-insensitive substrings over name or
// description of available items. A blank query short-circuits to an empty
// list without touching the store.
func (s *ItemService) SearchAvailableItems(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	offset := pageOffset(from, size)
	cacheKey := fmt.Sprintf("%s|%d|%d", strings.ToLower(text), offset, size)

	if s.cache != nil {
		if items, ok, err := s.cache.GetItems(ctx, cacheKey); err == nil && ok {
			return items, nil
		}
	}

	items, err := s.repo.SearchAvailableItems(ctx, text, size, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}

	if s.cache != nil {
		if err := s.cache.SetItems(ctx, cacheKey, items); err != nil {
			s.logger.Warn().Err(err).Msg("search cache set failed")
		}
	}

	return items, nil
}

func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, in NewComment) (*models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be blank"}
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", authorID)
	}
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("item with id = %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}

	finished, err := s.repo.HasFinishedBooking(ctx, item.ID, author.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, badRequestf("user with id = %d not booking the item with id = %d", authorID, itemID)
	}

	comment := &models.Comment{
		Text:       in.Text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    time.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publishCommentEvent(comment)

	return comment, nil
}

func (s *ItemService) enrichItem(ctx context.Context, viewerID int64, item *models.Item) (*models.ItemDetails, error) {
	comments, err := s.repo.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	details := &models.ItemDetails{Item: *item, Comments: comments}
	if viewerID != item.OwnerID {
		return details, nil
	}

	now := time.Now()
	last, err := s.repo.LastBookingForItem(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.NextBookingForItem(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}

	details.LastBooking = bookingRef(last)
	details.NextBooking = bookingRef(next)
	return details, nil
}

func bookingRef(booking *models.Booking) *models.BookingRef {
	if booking == nil {
		return nil
	}
	return &models.BookingRef{
		ID:       booking.ID,
		BookerID: booking.BookerID,
		Start:    booking.Start,
		End:      booking.End,
	}
}

func (s *ItemService) invalidateSearchCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidation failed")
	}
}

func (s *ItemService) publishCommentEvent(comment *models.Comment) {
	if s.eventBus == nil {
		return
	}

	payload := events.CommentEventPayload{
		CommentID: comment.ID,
		ItemID:    comment.ItemID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
	}
}
