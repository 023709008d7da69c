package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/config"
	"shareit/internal/service"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the sharing API over HTTP/JSON.
type HTTPServer struct {
	cfg      config.HTTPConfig
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService

	auth        Authenticator
	operatorKey string
	logger      *zerolog.Logger
	server      *http.Server
}

func NewHTTPServer(
	cfg *config.Config,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:         cfg.HTTP,
		users:       users,
		items:       items,
		bookings:    bookings,
		requests:    requests,
		auth:        NewHeaderAuth(cfg.HTTP.IdentityHeader),
		operatorKey: cfg.Admin.OperatorKey,
		logger:      logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", srv.handleHealth)

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleAddItem)
	mux.HandleFunc("GET /items", srv.handleListItemsByOwner)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /bookings", srv.handleAddBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookingsByBooker)
	mux.HandleFunc("GET /bookings/owner", srv.handleListBookingsByOwner)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleHandleBooking)

	mux.HandleFunc("POST /requests", srv.handleAddRequest)
	mux.HandleFunc("GET /requests", srv.handleMyRequests)
	mux.HandleFunc("GET /requests/all", srv.handleAllRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	mux.HandleFunc("GET /admin/bookings/export", srv.handleExportBookings)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.withMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the configured handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorBody{
		Status:  statusCode,
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// writeServiceError maps service errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	var (
		notFound     *service.NotFoundError
		badRequest   *service.BadRequestError
		conflict     *service.ConflictError
		validation   *service.ValidationError
		unknownState *service.UnknownStateError
	)

	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &badRequest), errors.As(err, &validation), errors.As(err, &unknownState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// actor resolves the calling user id, writing a 400 when the identity header
// is missing or malformed.
func (s *HTTPServer) actor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := s.auth.Actor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// decode reads the JSON body into dst, writing a 400 on malformed input.
func (s *HTTPServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid path parameter %q", name)
	}
	return id, nil
}

// pageParams reads from/size with the usual defaults.
func pageParams(r *http.Request) (from, size int, err error) {
	from, size = 0, 10

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid query parameter 'from'")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid query parameter 'size'")
		}
	}
	return from, size, nil
}
