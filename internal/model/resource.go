package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is a practice material entry in the public catalogue.
type Resource struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	URL         string     `json:"url" gorm:"size:768;not null;uniqueIndex"`
	Category    string     `json:"category" gorm:"size:16;not null;index"`
	Description string     `json:"description" gorm:"type:text"`
	CreatedBy   *uuid.UUID `json:"createdBy" gorm:"type:char(36)"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets the UUID and default category before inserting the record.
func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Category == "" {
		r.Category = TypeTechnical
	}
	return nil
}

// ResourceFilter narrows and paginates catalogue listings.
type ResourceFilter struct {
	Category string
	Page     int
	Limit    int
}

// Offset returns the row offset for the filter's page.
func (f ResourceFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
