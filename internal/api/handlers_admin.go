package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"shareit/internal/export"
)

const operatorKeyHeader = "X-Operator-Key"

// handleExportBookings streams an xlsx report of bookings in a date range.
// Guarded by the operator key, not the sharer identity header.
func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	if s.operatorKey == "" {
		writeError(w, http.StatusNotFound, "export is not enabled")
		return
	}
	provided := r.Header.Get(operatorKeyHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.operatorKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid operator key")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	var err error

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date; expected YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date; expected YYYY-MM-DD")
			return
		}
		// Inclusive end date.
		end = end.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		writeError(w, http.StatusBadRequest, "end date must be after start date")
		return
	}

	bookings, err := s.bookings.ListByDateRange(r.Context(), start, end)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	file, err := export.BookingsReport(bookings)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build bookings report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := file.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to write bookings report")
	}
}
