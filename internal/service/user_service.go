package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// NewUser is the signup payload.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch applies only the fields present in the request body.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "must not be blank"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a well-formed email address"}
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	inUse, err := s.repo.EmailInUse(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, &ConflictError{Message: "user with email = " + in.Email + " already exists"}
	}

	user := &models.User{Name: in.Name, Email: in.Email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, &ConflictError{Message: "user with email = " + in.Email + " already exists"}
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
		inUse, err := s.repo.EmailInUse(ctx, *patch.Email, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, &ConflictError{Message: "user with email = " + *patch.Email + " already exists"}
		}
		user.Email = *patch.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, &ConflictError{Message: "user with email = " + user.Email + " already exists"}
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("user with id = %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, from, size int) ([]models.User, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	users, err := s.repo.ListUsers(ctx, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
