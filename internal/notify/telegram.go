package notify

import (
	"encoding/json"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier forwards booking and comment events to a telegram chat.
type TelegramNotifier struct {
	sender domain.TelegramSender
	chatID int64
	logger *zerolog.Logger
}

// Connect creates the bot API client.
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = debug
	return bot, nil
}

func NewTelegramNotifier(sender domain.TelegramSender, chatID int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID, logger: logger}
}

// SubscribeTo registers the notifier on the event bus.
func (n *TelegramNotifier) SubscribeTo(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingApproved, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingRejected, n.handleBookingEvent)
	bus.Subscribe(events.EventCommentAdded, n.handleCommentEvent)
}

func (n *TelegramNotifier) handleBookingEvent(event *events.Event) error {
	var p events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to decode booking event")
		return err
	}

	var text string
	switch event.Type {
	case events.EventBookingCreated:
		text = fmt.Sprintf("New booking #%d for %q: %s - %s, awaiting approval",
			p.BookingID, p.ItemName,
			p.Start.Format("2006-01-02 15:04"), p.End.Format("2006-01-02 15:04"))
	case events.EventBookingApproved:
		text = fmt.Sprintf("Booking #%d for %q approved", p.BookingID, p.ItemName)
	case events.EventBookingRejected:
		text = fmt.Sprintf("Booking #%d for %q rejected", p.BookingID, p.ItemName)
	default:
		return nil
	}

	return n.send(text)
}

func (n *TelegramNotifier) handleCommentEvent(event *events.Event) error {
	var p events.CommentEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to decode comment event")
		return err
	}

	return n.send(fmt.Sprintf("New comment on item #%d: %s", p.ItemID, p.Text))
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("failed to send telegram notification")
		return err
	}
	return nil
}
