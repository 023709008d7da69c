package api

import (
	"net/http"
	"strconv"

	"shareit/internal/service"
)

func (s *HTTPServer) handleAddBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actor(w, r)
	if !ok {
		return
	}

	var in service.NewBooking
	if !s.decode(w, r, &in) {
		return
	}

	booking, err := s.bookings.AddBooking(r.Context(), requesterID, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleHandleBooking(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actor(w, r)
	if !ok {
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameter 'approved' must be true or false")
		return
	}

	booking, err := s.bookings.HandleBooking(r.Context(), actorID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), viewerID, bookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	state, err := service.ParseState(r.URL.Query().Get("state"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByBooker(r.Context(), viewerID, state, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleListBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	state, err := service.ParseState(r.URL.Query().Get("state"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByOwner(r.Context(), viewerID, state, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
