package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aadhidev/stockify/internal/hash"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	Repo  *repo.GormRepo
	Audit *AuditService
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets a user change their own username, email or password.
func (s *UserService) UpdateProfile(ctx context.Context, req transport.UpdateProfileRequest, actor Actor) (*models.User, error) {
	if req.Username == nil && req.Email == nil && req.Password == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	user, err := s.Repo.GetUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, actor.ID)
		}
		return nil, err
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidArgument)
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidArgument)
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, actor.ID, models.ActionUpdate, models.EntityUser, &user.ID, "updated user profile")
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor Actor) ([]models.User, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}
	return s.Repo.ListUsers(ctx)
}
