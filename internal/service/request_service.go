package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

// NewRequest is the "I need X" payload.
type NewRequest struct {
	Description string `json:"description"`
}

func (s *RequestService) AddRequest(ctx context.Context, ownerID int64, in NewRequest) (*models.ItemRequest, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be blank"}
	}

	owner, err := s.repo.GetUser(ctx, ownerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", ownerID)
	}
	if err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: in.Description,
		OwnerID:     owner.ID,
		Created:     time.Now(),
		Items:       []models.Item{},
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("owner_id", ownerID).Msg("item request created")
	return request, nil
}

func (s *RequestService) GetMyRequests(ctx context.Context, ownerID int64) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFoundf("user with id = %d not found", ownerID)
		}
		return nil, err
	}

	requests, err := s.repo.ListRequestsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetAllRequests(ctx context.Context, viewerID int64, from, size int) ([]models.ItemRequest, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsFromOthers(ctx, viewerID, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, viewerID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, viewerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFoundf("user with id = %d not found", viewerID)
		}
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("request with id = %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}

	enriched, err := s.attachItems(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// attachItems resolves fulfilling items for all requests in one batch lookup.
func (s *RequestService) attachItems(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequest, error) {
	if len(requests) == 0 {
		return []models.ItemRequest{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	items, err := s.repo.ListItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]models.Item, len(requests))
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
	}

	for i := range requests {
		requests[i].Items = byRequest[requests[i].ID]
		if requests[i].Items == nil {
			requests[i].Items = []models.Item{}
		}
	}
	return requests, nil
}
