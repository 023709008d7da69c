package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

// NewBookingService constructs the booking service. eventBus may be nil.
func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, eventBus: eventBus, logger: logger}
}

// NewBooking is the booking creation payload.
type NewBooking struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (s *BookingService) AddBooking(ctx context.Context, requesterID int64, in NewBooking) (*models.Booking, error) {
	now := time.Now()

	if in.Start == nil {
		return nil, &ValidationError{Field: "start", Reason: "must not be null"}
	}
	if in.End == nil {
		return nil, &ValidationError{Field: "end", Reason: "must not be null"}
	}
	if in.Start.Before(now) {
		return nil, &ValidationError{Field: "start", Reason: "must not be in the past"}
	}
	if !in.End.After(now) {
		return nil, &ValidationError{Field: "end", Reason: "must be in the future"}
	}
	if in.Start.Equal(*in.End) {
		return nil, badRequestf("start must not equal end")
	}
	if in.Start.After(*in.End) {
		return nil, badRequestf("end must be after start")
	}

	item, err := s.repo.GetItem(ctx, in.ItemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("item with id = %d not found", in.ItemID)
	}
	if err != nil {
		return nil, err
	}

	requester, err := s.repo.GetUser(ctx, requesterID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", requesterID)
	}
	if err != nil {
		return nil, err
	}

	// Owners asking for their own item get not-found, not forbidden.
	if requester.ID == item.OwnerID {
		return nil, notFoundf("unable to book your own item")
	}

	if !item.Available {
		return nil, badRequestf("item with id = %d unavailable", item.ID)
	}

	booking := &models.Booking{
		Start:    *in.Start,
		End:      *in.End,
		ItemID:   item.ID,
		BookerID: requester.ID,
		Status:   models.StatusWaiting,
		Item:     item,
		Booker:   requester,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Int64("booker_id", requester.ID).Msg("booking created")

	return booking, nil
}

// HandleBooking applies the owner's approval decision. Approving an already
// approved booking fails; re-rejecting a rejected one re-sets REJECTED.
func (s *BookingService) HandleBooking(ctx context.Context, actorID, bookingID int64, approve bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("booking with id = %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}

	if booking.Item.OwnerID != actorID {
		return nil, notFoundf("user with id = %d is not the owner of booking with id = %d", actorID, bookingID)
	}

	if approve && booking.Status == models.StatusApproved {
		return nil, badRequestf("booking with id = %d is already approved", bookingID)
	}

	next := models.StatusRejected
	eventType := events.EventBookingRejected
	if approve {
		next = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	// Status precondition keeps the transition atomic under concurrent calls.
	if err := s.repo.UpdateBookingStatusFrom(ctx, bookingID, booking.Status, next); err != nil {
		if errors.Is(err, database.ErrConcurrentModification) {
			return nil, &ConflictError{Message: "booking was updated concurrently, retry"}
		}
		return nil, err
	}
	booking.Status = next

	s.publishEvent(eventType, booking)

	return booking, nil
}

// GetBooking is visible only to the booker and the item owner; everyone else
// gets not-found.
func (s *BookingService) GetBooking(ctx context.Context, viewerID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("booking with id = %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}

	if viewerID != booking.BookerID && viewerID != booking.Item.OwnerID {
		return nil, notFoundf("user with id = %d is not the booker or the item owner", viewerID)
	}

	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, viewerID int64, state models.State, from, size int) ([]models.Booking, error) {
	if err := s.checkViewer(ctx, viewerID); err != nil {
		return nil, err
	}
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsByBooker(ctx, viewerID, state, time.Now(), size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) ListByOwner(ctx context.Context, viewerID int64, state models.State, from, size int) ([]models.Booking, error) {
	if err := s.checkViewer(ctx, viewerID); err != nil {
		return nil, err
	}
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsByOwner(ctx, viewerID, state, time.Now(), size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// ListByDateRange feeds the operator export report.
func (s *BookingService) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return s.repo.ListBookingsByDateRange(ctx, start, end)
}

func (s *BookingService) checkViewer(ctx context.Context, viewerID int64) error {
	_, err := s.repo.GetUser(ctx, viewerID)
	if errors.Is(err, database.ErrNotFound) {
		return notFoundf("user with id = %d not found", viewerID)
	}
	return err
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if booking.Item != nil {
		payload.ItemName = booking.Item.Name
		payload.OwnerID = booking.Item.OwnerID
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
