package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meetconnect/internal/model"
)

// ResourceRepository defines catalogue persistence operations.
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	List(ctx context.Context, filter model.ResourceFilter) ([]model.Resource, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Upsert(ctx context.Context, resource *model.Resource) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create inserts a new resource.
func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

// FindByID finds a resource by ID.
func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List returns one page of resources, newest first, and the total match count.
func (r *resourceRepository) List(ctx context.Context, filter model.ResourceFilter) ([]model.Resource, int64, error) {
	byCategory := func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			return db.Where("category = ?", filter.Category)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Resource{}).Scopes(byCategory).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	resources := []model.Resource{}
	if total == 0 {
		return resources, 0, nil
	}
	if err := r.db.WithContext(ctx).Scopes(byCategory).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&resources).Error; err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

// Delete removes a resource by ID.
func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Resource{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert inserts a resource or refreshes the existing row with the same URL.
func (r *resourceRepository) Upsert(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "category", "description", "updated_at"}),
	}).Create(resource).Error
}
