package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/logger"
	"meetconnect/internal/model"
	"meetconnect/internal/repository"
)

const (
	DefaultResourcePageSize = 10
	MaxResourcePageSize     = 100
)

// NewResource is a catalogue contribution.
type NewResource struct {
	Title       string
	URL         string
	Category    string
	Description string
}

// ResourcePage is one page of a catalogue listing.
type ResourcePage struct {
	Resources  []model.Resource
	Total      int64
	Page       int
	TotalPages int
}

// ResourceService manages the public practice-resource catalogue.
type ResourceService interface {
	List(ctx context.Context, filter model.ResourceFilter) (*ResourcePage, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	Create(ctx context.Context, in NewResource, createdBy *uuid.UUID) (*model.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, resources []NewResource) (int, error)
}

type resourceService struct {
	resources repository.ResourceRepository
}

// NewResourceService creates a new resource service.
func NewResourceService(resources repository.ResourceRepository) ResourceService {
	return &resourceService{resources: resources}
}

// List returns a page of resources. Page and limit are clamped to sane bounds.
func (s *resourceService) List(ctx context.Context, filter model.ResourceFilter) (*ResourcePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultResourcePageSize
	}
	if filter.Limit > MaxResourcePageSize {
		filter.Limit = MaxResourcePageSize
	}

	resources, total, err := s.resources.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	return &ResourcePage{
		Resources:  resources,
		Total:      total,
		Page:       filter.Page,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (s *resourceService) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	resource, err := s.resources.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return resource, nil
}

// Create adds a resource; createdBy is nil for anonymous contributions.
func (s *resourceService) Create(ctx context.Context, in NewResource, createdBy *uuid.UUID) (*model.Resource, error) {
	resource := &model.Resource{
		Title:       in.Title,
		URL:         in.URL,
		Category:    in.Category,
		Description: in.Description,
		CreatedBy:   createdBy,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrResourceExists
		}
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return resource, nil
}

func (s *resourceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}

// Import upserts resources by URL and returns how many were written.
func (s *resourceService) Import(ctx context.Context, resources []NewResource) (int, error) {
	written := 0
	for _, in := range resources {
		resource := &model.Resource{
			Title:       in.Title,
			URL:         in.URL,
			Category:    in.Category,
			Description: in.Description,
		}
		if err := s.resources.Upsert(ctx, resource); err != nil {
			return written, fmt.Errorf("import %q: %w", in.URL, err)
		}
		written++
	}
	logger.Log.Infow("resources imported", "count", written)
	return written, nil
}
