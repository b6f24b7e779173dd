package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetconnect/internal/model"
)

// AccountRepository defines account persistence operations.
// Lookups return gorm.ErrRecordNotFound when nothing matches.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. A taken email yields gorm.ErrDuplicatedKey.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update saves every column of an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by its normalised email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByResetToken finds the account holding tokenHash with an expiry after now.
func (r *accountRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_token_expires_at > ?", tokenHash, now).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
