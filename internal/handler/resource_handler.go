package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"meetconnect/internal/auth"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/service"
)

// ResourceHandler serves the practice-resource catalogue.
type ResourceHandler struct {
	svc service.ResourceService
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(svc service.ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// ListResourcesRequest holds catalogue query parameters.
type ListResourcesRequest struct {
	Category string `query:"category"`
	Page     int    `query:"page" validate:"gte=0"`
	Limit    int    `query:"limit" validate:"gte=0"`
}

// CreateResourceRequest represents a catalogue contribution.
type CreateResourceRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required"`
	URL         string `json:"url" validate:"required,http_url" msg:"A valid URL is required"`
	Category    string `json:"category" validate:"omitempty,oneof=frontend backend fullstack behavioral dsa system hr technical"`
	Description string `json:"description"`
}

// ResourceListResponse is one page of the catalogue.
type ResourceListResponse struct {
	Success     bool             `json:"success"`
	Resources   []model.Resource `json:"resources"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
}

// ResourceResponse wraps a single resource.
type ResourceResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Resource *model.Resource `json:"resource"`
}

// ListResources godoc
// @Summary List practice resources
// @Tags resources
// @Produce json
// @Param category query string false "Category, or all"
// @Param page query int false "Page number, from 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} ResourceListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c echo.Context) error {
	var req ListResourcesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Category == "all" {
		req.Category = ""
	}

	page, err := h.svc.List(c.Request().Context(), model.ResourceFilter{
		Category: req.Category,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ResourceListResponse{
		Success:     true,
		Resources:   page.Resources,
		Total:       page.Total,
		CurrentPage: page.Page,
		TotalPages:  page.TotalPages,
	})
}

// GetResource godoc
// @Summary Get a practice resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} ResourceResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c echo.Context) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}
	resource, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ResourceResponse{Success: true, Resource: resource})
}

// CreateResource godoc
// @Summary Contribute a practice resource
// @Description Authentication is optional; signed-in contributors are recorded as the creator.
// @Tags resources
// @Accept json
// @Produce json
// @Param request body CreateResourceRequest true "Resource"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c echo.Context) error {
	var req CreateResourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var createdBy *uuid.UUID
	if caller, ok := auth.CallerFromContext(c.Request().Context()); ok {
		id := caller.ID()
		createdBy = &id
	}

	resource, err := h.svc.Create(c.Request().Context(), service.NewResource{
		Title:       req.Title,
		URL:         req.URL,
		Category:    req.Category,
		Description: req.Description,
	}, createdBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ResourceResponse{
		Success:  true,
		Message:  "Resource created successfully",
		Resource: resource,
	})
}

// DeleteResource godoc
// @Summary Delete a practice resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Resource deleted successfully"})
}

func resourceID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrResourceNotFound
	}
	return id, nil
}
