package events

import "github.com/rs/zerolog"

// AuditLogger returns a handler that writes every received event to the log.
func AuditLogger(logger *zerolog.Logger) EventHandler {
	return func(event *Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Time("created_at", event.CreatedAt).
			Msg("domain event")
		return nil
	}
}
