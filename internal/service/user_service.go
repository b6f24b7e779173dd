package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetconnect/internal/cache"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileCacheKey is the cache key of an account's profile. Writers outside
// UserService delete it after changing the account.
func ProfileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// ProfileUpdate is the mutable subset of an account. Nil fields are left as is.
type ProfileUpdate struct {
	Name    *string
	Contact *string
	DOB     *string
}

// UserService exposes the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.Account, error)
}

type userService struct {
	accounts repository.AccountRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(accounts repository.AccountRepository, cache *cache.Client) UserService {
	return &userService{accounts: accounts, cache: cache}
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	if data, _ := s.cache.Get(ctx, ProfileCacheKey(id)); data != nil {
		var cached model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(account); err == nil {
		_ = s.cache.Set(ctx, ProfileCacheKey(id), payload, profileCacheTTL)
	}
	return account, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.Account, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Contact != nil {
		account.Contact = *update.Contact
	}
	if update.DOB != nil {
		if *update.DOB == "" {
			account.DOB = ""
		} else {
			dob, ok := model.NormalizeDate(*update.DOB)
			if !ok {
				return nil, apperrors.Validation(apperrors.FieldError{Field: "dob", Message: "dob must be a valid date", Value: *update.DOB})
			}
			account.DOB = dob
		}
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, ProfileCacheKey(id))
	return account, nil
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}
