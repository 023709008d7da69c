package service

import (
	"strings"

	"shareit/internal/models"
)

// ParseState resolves a raw state filter token. An empty token defaults to
// ALL; anything outside the closed set is an UnknownStateError carrying the
// original token.
func ParseState(raw string) (models.State, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return models.StateAll, nil
	}

	switch models.State(strings.ToUpper(token)) {
	case models.StateAll:
		return models.StateAll, nil
	case models.StateCurrent:
		return models.StateCurrent, nil
	case models.StatePast:
		return models.StatePast, nil
	case models.StateFuture:
		return models.StateFuture, nil
	case models.StateWaiting:
		return models.StateWaiting, nil
	case models.StateRejected:
		return models.StateRejected, nil
	default:
		return "", &UnknownStateError{State: token}
	}
}
