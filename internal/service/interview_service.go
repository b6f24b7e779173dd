package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/repository"
)

// NewInterview is a request to schedule an interview.
type NewInterview struct {
	Type        string
	Date        time.Time
	Time        string
	Interviewer string
	Duration    *int
	Notes       string
}

// InterviewUpdate is a partial update. Nil fields are left unchanged; the
// owner and completion timestamp cannot be changed here.
type InterviewUpdate struct {
	Type        *string
	Date        *time.Time
	Time        *string
	Interviewer *string
	Duration    *int
	Notes       *string
	Status      *string
	Result      *string
	Score       *int
	Feedback    *string
}

func (u InterviewUpdate) fields() map[string]any {
	fields := make(map[string]any)
	if u.Type != nil {
		fields["type"] = *u.Type
	}
	if u.Date != nil {
		fields["date"] = *u.Date
	}
	if u.Time != nil {
		fields["time"] = *u.Time
	}
	if u.Interviewer != nil {
		fields["interviewer"] = *u.Interviewer
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	if u.Notes != nil {
		fields["notes"] = *u.Notes
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.Result != nil {
		fields["result"] = *u.Result
	}
	if u.Score != nil {
		fields["score"] = *u.Score
	}
	if u.Feedback != nil {
		fields["feedback"] = *u.Feedback
	}
	return fields
}

// InterviewService manages interviews on behalf of their owner. Records
// owned by another account are reported as not found.
type InterviewService interface {
	List(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error)
	Create(ctx context.Context, ownerID uuid.UUID, in NewInterview) (*model.Interview, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, update InterviewUpdate) (*model.Interview, error)
	Complete(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type interviewService struct {
	interviews repository.InterviewRepository
	now        func() time.Time
}

// NewInterviewService creates a new interview service.
func NewInterviewService(interviews repository.InterviewRepository) InterviewService {
	return &interviewService{
		interviews: interviews,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *interviewService) List(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error) {
	interviews, err := s.interviews.ListOwned(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return interviews, nil
}

// Create schedules an interview for ownerID. Status always starts as scheduled.
func (s *interviewService) Create(ctx context.Context, ownerID uuid.UUID, in NewInterview) (*model.Interview, error) {
	interview := &model.Interview{
		OwnerID:     ownerID,
		Type:        in.Type,
		Date:        in.Date,
		Time:        in.Time,
		Interviewer: in.Interviewer,
		Duration:    model.DefaultDuration,
		Notes:       in.Notes,
		Status:      model.StatusScheduled,
		Result:      model.ResultPending,
	}
	if in.Duration != nil {
		interview.Duration = *in.Duration
	}

	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	return interview, nil
}

func (s *interviewService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	interview, err := s.interviews.FindOwned(ctx, id, ownerID)
	return interview, notFound(err, "find interview")
}

func (s *interviewService) Update(ctx context.Context, id, ownerID uuid.UUID, update InterviewUpdate) (*model.Interview, error) {
	interview, err := s.interviews.UpdateOwned(ctx, id, ownerID, update.fields())
	return interview, notFound(err, "update interview")
}

// Complete marks the interview completed and stamps the completion time.
// Repeating it refreshes the timestamp.
func (s *interviewService) Complete(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	interview, err := s.interviews.CompleteOwned(ctx, id, ownerID, s.now())
	return interview, notFound(err, "complete interview")
}

func (s *interviewService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return notFound(s.interviews.DeleteOwned(ctx, id, ownerID), "delete interview")
}

func notFound(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrInterviewNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
