package router

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetconnect/internal/model"
)

type memAccounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[uuid.UUID]model.Account{}}
}

func (m *memAccounts) Create(_ context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	m.byID[account.ID] = *account
	return nil
}

func (m *memAccounts) Update(_ context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account.UpdatedAt = time.Now().UTC()
	m.byID[account.ID] = *account
	return nil
}

func (m *memAccounts) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = model.NormalizeEmail(email)
	for _, account := range m.byID {
		if account.Email == email {
			return &account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAccounts) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byID {
		if account.ResetTokenHash != nil && *account.ResetTokenHash == tokenHash &&
			account.ResetTokenExpiresAt != nil && account.ResetTokenExpiresAt.After(now) {
			return &account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memInterviews struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Interview
}

func newMemInterviews() *memInterviews {
	return &memInterviews{byID: map[uuid.UUID]model.Interview{}}
}

func (m *memInterviews) Create(_ context.Context, interview *model.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview.ID = uuid.New()
	m.byID[interview.ID] = *interview
	return nil
}

func (m *memInterviews) ListOwned(_ context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	statuses := filter.Statuses()
	out := []model.Interview{}
	for _, interview := range m.byID {
		if interview.OwnerID != ownerID {
			continue
		}
		if statuses != nil && !slices.Contains(statuses, interview.Status) {
			continue
		}
		out = append(out, interview)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *memInterviews) FindOwned(_ context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.byID[id]
	if !ok || interview.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return &interview, nil
}

// UpdateOwned supports the notes field only.
func (m *memInterviews) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, fields map[string]any) (*model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.byID[id]
	if !ok || interview.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	if notes, ok := fields["notes"].(string); ok {
		interview.Notes = notes
	}
	m.byID[id] = interview
	return &interview, nil
}

func (m *memInterviews) CompleteOwned(_ context.Context, id, ownerID uuid.UUID, at time.Time) (*model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.byID[id]
	if !ok || interview.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	interview.Status = model.StatusCompleted
	interview.CompletedAt = &at
	m.byID[id] = interview
	return &interview, nil
}

func (m *memInterviews) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.byID[id]
	if !ok || interview.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

type memResources struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Resource
}

func newMemResources() *memResources {
	return &memResources{byID: map[uuid.UUID]model.Resource{}}
}

func (m *memResources) Create(_ context.Context, resource *model.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.URL == resource.URL {
			return gorm.ErrDuplicatedKey
		}
	}
	resource.ID = uuid.New()
	if resource.Category == "" {
		resource.Category = model.TypeTechnical
	}
	m.byID[resource.ID] = *resource
	return nil
}

func (m *memResources) FindByID(_ context.Context, id uuid.UUID) (*model.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resource, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &resource, nil
}

func (m *memResources) List(_ context.Context, filter model.ResourceFilter) ([]model.Resource, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []model.Resource{}
	for _, resource := range m.byID {
		if filter.Category == "" || resource.Category == filter.Category {
			matched = append(matched, resource)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].URL < matched[j].URL })
	total := int64(len(matched))
	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], total, nil
}

func (m *memResources) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memResources) Upsert(ctx context.Context, resource *model.Resource) error {
	return m.Create(ctx, resource)
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memRevocations) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}
