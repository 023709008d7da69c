package notify

import (
	"testing"
	"time"

	"shareit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramNotifier_BookingEvents(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	bus := events.NewEventBus()

	NewTelegramNotifier(sender, 42, &logger).SubscribeTo(bus)

	payload := events.BookingEventPayload{
		BookingID: 7,
		ItemName:  "Drill",
		Start:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, bus.PublishJSON(events.EventBookingCreated, payload))
	require.NoError(t, bus.PublishJSON(events.EventBookingApproved, payload))
	require.NoError(t, bus.PublishJSON(events.EventBookingRejected, payload))

	require.Len(t, sender.sent, 3)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "booking #7")
	assert.Contains(t, msg.Text, "Drill")

	msg, ok = sender.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "approved")
}

func TestTelegramNotifier_CommentEvents(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	bus := events.NewEventBus()

	NewTelegramNotifier(sender, 42, &logger).SubscribeTo(bus)

	require.NoError(t, bus.PublishJSON(events.EventCommentAdded, events.CommentEventPayload{
		CommentID: 1,
		ItemID:    3,
		Text:      "works great",
	}))

	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "item #3")
	assert.Contains(t, msg.Text, "works great")
}
