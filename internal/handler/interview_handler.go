package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/service"
)

// InterviewHandler handles the caller's interviews.
type InterviewHandler struct {
	svc service.InterviewService
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(svc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

// CreateInterviewRequest represents a request to schedule an interview.
// Owner and status are never taken from the body.
type CreateInterviewRequest struct {
	Type        string `json:"type" validate:"required,oneof=frontend backend fullstack behavioral dsa system hr technical" msg:"Valid interview type is required"`
	Date        string `json:"date" validate:"required,calendardate" msg:"Valid date is required"`
	Time        string `json:"time" validate:"required,clock" msg:"Time must be in HH:MM format"`
	Interviewer string `json:"interviewer" validate:"required" msg:"Interviewer name is required"`
	Duration    *int   `json:"duration" validate:"omitnil,gte=15,lte=240" msg:"Duration must be between 15 and 240 minutes"`
	Notes       string `json:"notes"`
}

// UpdateInterviewRequest is a partial update; absent or null fields are
// left unchanged.
type UpdateInterviewRequest struct {
	Type        *string `json:"type" validate:"omitnil,oneof=frontend backend fullstack behavioral dsa system hr technical"`
	Date        *string `json:"date" validate:"omitnil,calendardate"`
	Time        *string `json:"time" validate:"omitnil,clock" msg:"Time must be in HH:MM format"`
	Interviewer *string `json:"interviewer" validate:"omitnil,min=1"`
	Duration    *int    `json:"duration" validate:"omitnil,gte=15,lte=240" msg:"Duration must be between 15 and 240 minutes"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status" validate:"omitnil,oneof=scheduled upcoming completed cancelled"`
	Result      *string `json:"result" validate:"omitnil,oneof=passed failed pending"`
	Score       *int    `json:"score" validate:"omitnil,gte=0,lte=100" msg:"Score must be between 0 and 100"`
	Feedback    *string `json:"feedback"`
}

func (r UpdateInterviewRequest) toUpdate() service.InterviewUpdate {
	update := service.InterviewUpdate{
		Type:        r.Type,
		Time:        r.Time,
		Interviewer: r.Interviewer,
		Duration:    r.Duration,
		Notes:       r.Notes,
		Status:      r.Status,
		Result:      r.Result,
		Score:       r.Score,
		Feedback:    r.Feedback,
	}
	if r.Date != nil {
		// Already checked by the calendardate tag.
		date, _ := model.ParseDate(*r.Date)
		update.Date = &date
	}
	return update
}

// InterviewListResponse is the list payload.
type InterviewListResponse struct {
	Success    bool              `json:"success"`
	Interviews []model.Interview `json:"interviews"`
}

// InterviewResponse wraps a single interview.
type InterviewResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message,omitempty"`
	Interview *model.Interview `json:"interview"`
}

// SuccessResponse is a bare confirmation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListInterviews godoc
// @Summary List the caller's interviews
// @Description Ordered by date then time. status=upcoming matches scheduled and upcoming.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param status query string false "upcoming | completed | all"
// @Success 200 {object} InterviewListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /interviews [get]
func (h *InterviewHandler) ListInterviews(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	filter := model.FilterAll
	switch model.StatusFilter(c.QueryParam("status")) {
	case model.FilterUpcoming:
		filter = model.FilterUpcoming
	case model.FilterCompleted:
		filter = model.FilterCompleted
	}

	interviews, err := h.svc.List(c.Request().Context(), caller.ID(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, InterviewListResponse{Success: true, Interviews: interviews})
}

// CreateInterview godoc
// @Summary Schedule an interview
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInterviewRequest true "Interview"
// @Success 201 {object} InterviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) CreateInterview(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req CreateInterviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, _ := model.ParseDate(req.Date)

	interview, err := h.svc.Create(c.Request().Context(), caller.ID(), service.NewInterview{
		Type:        req.Type,
		Date:        date,
		Time:        req.Time,
		Interviewer: req.Interviewer,
		Duration:    req.Duration,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, InterviewResponse{
		Success:   true,
		Message:   "Interview scheduled successfully",
		Interview: interview,
	})
}

// GetInterview godoc
// @Summary Get one of the caller's interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} InterviewResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c echo.Context) error {
	caller, id, err := h.target(c)
	if err != nil {
		return err
	}
	interview, err := h.svc.Get(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, InterviewResponse{Success: true, Interview: interview})
}

// UpdateInterview godoc
// @Summary Update one of the caller's interviews
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Param request body UpdateInterviewRequest true "Fields to change"
// @Success 200 {object} InterviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id} [put]
func (h *InterviewHandler) UpdateInterview(c echo.Context) error {
	caller, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req UpdateInterviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	interview, err := h.svc.Update(c.Request().Context(), id, caller, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, InterviewResponse{
		Success:   true,
		Message:   "Interview updated successfully",
		Interview: interview,
	})
}

// CompleteInterview godoc
// @Summary Mark one of the caller's interviews completed
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} InterviewResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id}/complete [patch]
func (h *InterviewHandler) CompleteInterview(c echo.Context) error {
	caller, id, err := h.target(c)
	if err != nil {
		return err
	}
	interview, err := h.svc.Complete(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, InterviewResponse{
		Success:   true,
		Message:   "Interview completed successfully",
		Interview: interview,
	})
}

// DeleteInterview godoc
// @Summary Delete one of the caller's interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id} [delete]
func (h *InterviewHandler) DeleteInterview(c echo.Context) error {
	caller, id, err := h.target(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, caller); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Interview deleted successfully"})
}

// target returns the caller id and the interview id from the path. A
// malformed id is reported as not found.
func (h *InterviewHandler) target(c echo.Context) (caller, id uuid.UUID, err error) {
	cl, err := callerFrom(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrInterviewNotFound
	}
	return cl.ID(), id, nil
}
