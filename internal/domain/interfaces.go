package domain

import (
	"context"
	"time"

	"shareit/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository is the persistence surface consumed by the service layer.
// *database.DB implements it.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, limit, offset int) ([]models.Item, error)
	ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusFrom(ctx context.Context, id int64, expected, next string) error
	ListBookingsByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByOwner(ctx context.Context, ownerID int64) ([]models.ItemRequest, error)
	ListRequestsFromOthers(ctx context.Context, viewerID int64, limit, offset int) ([]models.ItemRequest, error)
}

// Cache stores item search results under opaque keys. Invalidate drops the
// whole search namespace after an item mutation.
type Cache interface {
	GetItems(ctx context.Context, key string) ([]models.Item, bool, error)
	SetItems(ctx context.Context, key string, items []models.Item) error
	Invalidate(ctx context.Context) error
}

// EventPublisher publishes domain events for audit and notifications.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the slice of the bot API the notifier needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
