package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"meetconnect/internal/auth"
	"meetconnect/internal/model"
	"meetconnect/internal/notify"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockInterviewRepository is a mock implementation of InterviewRepository.
type MockInterviewRepository struct {
	mock.Mock
}

func (m *MockInterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	args := m.Called(ctx, interview)
	return args.Error(0)
}

func (m *MockInterviewRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Interview), args.Error(1)
}

func (m *MockInterviewRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interview), args.Error(1)
}

func (m *MockInterviewRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, fields map[string]any) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interview), args.Error(1)
}

func (m *MockInterviewRepository) CompleteOwned(ctx context.Context, id, ownerID uuid.UUID, at time.Time) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interview), args.Error(1)
}

func (m *MockInterviewRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// MockResourceRepository is a mock implementation of ResourceRepository.
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceRepository) List(ctx context.Context, filter model.ResourceFilter) ([]model.Resource, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository) Upsert(ctx context.Context, resource *model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

// MockRevocationStore is a mock implementation of auth.RevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockVerifier is a mock implementation of auth.FederatedIdentityVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, idToken string) (*auth.FederatedClaim, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.FederatedClaim), args.Error(1)
}

// MockResetNotifier is a mock implementation of notify.ResetNotifier.
type MockResetNotifier struct {
	mock.Mock
}

func (m *MockResetNotifier) NotifyPasswordReset(ctx context.Context, event notify.PasswordReset) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
