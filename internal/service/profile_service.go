package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pwdassist/internal/cache"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileService exposes profile read and update operations.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	Update(ctx context.Context, userID uint, fullName, email string) error
}

type profileService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(users repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{users: users, cache: cache}
}

func (s *profileService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFoundOrNotOwned
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// Update rewrites full name and email. Both are required; an email collision
// with another account surfaces as apperrors.ErrDuplicate.
func (s *profileService) Update(ctx context.Context, userID uint, fullName, email string) error {
	if fullName == "" || email == "" {
		return fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}

	if err := s.users.UpdateProfile(ctx, userID, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}
