package api

import (
	"net/http"

	"shareit/internal/service"
)

func (s *HTTPServer) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	var in service.NewItem
	if !s.decode(w, r, &in) {
		return
	}

	item, err := s.items.AddItem(r.Context(), ownerID, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch service.ItemPatch
	if !s.decode(w, r, &patch) {
		return
	}

	item, err := s.items.UpdateItem(r.Context(), ownerID, itemID, patch)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.GetItem(r.Context(), viewerID, itemID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleListItemsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actor(w, r)
	if !ok {
		return
	}

	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.ListItemsByOwner(r.Context(), ownerID, from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.SearchAvailableItems(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := s.actor(w, r)
	if !ok {
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var in service.NewComment
	if !s.decode(w, r, &in) {
		return
	}

	comment, err := s.items.AddComment(r.Context(), authorID, itemID, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
