package api

import (
	"net/http"

	"shareit/internal/service"
)

func (s *HTTPServer) handleAddRequest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	var in service.NewRequest
	if !s.decode(w, r, &in) {
		return
	}

	request, err := s.requests.AddRequest(r.Context(), ownerID, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	requests, err := s.requests.GetMyRequests(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleAllRequests(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetAllRequests(r.Context(), viewerID, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.GetRequest(r.Context(), viewerID, requestID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
