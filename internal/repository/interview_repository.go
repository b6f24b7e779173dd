package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetconnect/internal/model"
)

// InterviewRepository defines interview persistence. Every read and write
// except Create is scoped by owner; a record owned by someone else is
// reported exactly like a missing one (gorm.ErrRecordNotFound).
type InterviewRepository interface {
	Create(ctx context.Context, interview *model.Interview) error
	ListOwned(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, fields map[string]any) (*model.Interview, error)
	CompleteOwned(ctx context.Context, id, ownerID uuid.UUID, at time.Time) (*model.Interview, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func owned(db *gorm.DB, id, ownerID uuid.UUID) *gorm.DB {
	return db.Where("id = ? AND owner_id = ?", id, ownerID)
}

// Create inserts a new interview.
func (r *interviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

// ListOwned returns the owner's interviews ordered by date then time.
func (r *interviewRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if statuses := filter.Statuses(); statuses != nil {
		q = q.Where("status IN ?", statuses)
	}

	interviews := []model.Interview{}
	if err := q.Order("date ASC").Order("time ASC").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// FindOwned finds an interview by id and owner.
func (r *interviewRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	var interview model.Interview
	if err := owned(r.db.WithContext(ctx), id, ownerID).First(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

// UpdateOwned applies fields to the owner's interview and returns the stored result.
func (r *interviewRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, fields map[string]any) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, id, ownerID).First(&interview).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&interview).Updates(fields).Error; err != nil {
			return err
		}
		var stored model.Interview
		if err := owned(tx, id, ownerID).First(&stored).Error; err != nil {
			return err
		}
		interview = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// CompleteOwned marks the owner's interview completed at the given time.
func (r *interviewRepository) CompleteOwned(ctx context.Context, id, ownerID uuid.UUID, at time.Time) (*model.Interview, error) {
	return r.UpdateOwned(ctx, id, ownerID, map[string]any{
		"status":       model.StatusCompleted,
		"completed_at": at,
	})
}

// DeleteOwned removes the owner's interview.
func (r *interviewRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	res := owned(r.db.WithContext(ctx), id, ownerID).Delete(&model.Interview{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
