package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview categories, shared with Resource.Category.
const (
	TypeFrontend   = "frontend"
	TypeBackend    = "backend"
	TypeFullstack  = "fullstack"
	TypeBehavioral = "behavioral"
	TypeDSA        = "dsa"
	TypeSystem     = "system"
	TypeHR         = "hr"
	TypeTechnical  = "technical"
)

const (
	StatusScheduled = "scheduled"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	ResultPassed  = "passed"
	ResultFailed  = "failed"
	ResultPending = "pending"
)

const (
	DefaultDuration = 60
	MinDuration     = 15
	MaxDuration     = 240
	MinScore        = 0
	MaxScore        = 100
)

var (
	InterviewTypes    = []string{TypeFrontend, TypeBackend, TypeFullstack, TypeBehavioral, TypeDSA, TypeSystem, TypeHR, TypeTechnical}
	InterviewStatuses = []string{StatusScheduled, StatusUpcoming, StatusCompleted, StatusCancelled}
	InterviewResults  = []string{ResultPassed, ResultFailed, ResultPending}
)

// Interview is a scheduled mock-interview session owned by exactly one Account.
type Interview struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID  `json:"owner" gorm:"type:char(36);not null;index:idx_interviews_owner_schedule,priority:1"`
	Type        string     `json:"type" gorm:"size:16;not null"`
	Date        time.Time  `json:"date" gorm:"type:date;not null;index:idx_interviews_owner_schedule,priority:2"`
	Time        string     `json:"time" gorm:"size:5;not null;index:idx_interviews_owner_schedule,priority:3"`
	Interviewer string     `json:"interviewer" gorm:"size:255;not null"`
	Duration    int        `json:"duration" gorm:"not null"`
	Notes       string     `json:"notes" gorm:"type:text"`
	Status      string     `json:"status" gorm:"size:16;not null;index"`
	Result      string     `json:"result" gorm:"size:16;not null"`
	Score       *int       `json:"score"`
	Feedback    string     `json:"feedback" gorm:"type:text"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets the UUID and defaults before inserting the record.
func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Duration == 0 {
		i.Duration = DefaultDuration
	}
	if i.Status == "" {
		i.Status = StatusScheduled
	}
	if i.Result == "" {
		i.Result = ResultPending
	}
	return nil
}

func IsInterviewType(v string) bool   { return slices.Contains(InterviewTypes, v) }
func IsInterviewStatus(v string) bool { return slices.Contains(InterviewStatuses, v) }
func IsInterviewResult(v string) bool { return slices.Contains(InterviewResults, v) }

// StatusFilter selects interviews in List.
type StatusFilter string

const (
	FilterAll       StatusFilter = ""
	FilterUpcoming  StatusFilter = "upcoming"
	FilterCompleted StatusFilter = "completed"
)

// Statuses returns the statuses a filter matches; nil means no restriction.
func (f StatusFilter) Statuses() []string {
	switch f {
	case FilterUpcoming:
		return []string{StatusScheduled, StatusUpcoming}
	case FilterCompleted:
		return []string{StatusCompleted}
	default:
		return nil
	}
}
