package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"meetconnect/internal/auth"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2" msg:"Name must be at least 2 characters"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6" msg:"Password must be at least 6 characters"`
	Contact  string `json:"contact" validate:"omitempty,contact" msg:"Contact must be exactly 10 digits"`
	DOB      string `json:"dob" validate:"omitempty,calendardate"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest represents a federated sign-in request.
type GoogleLoginRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name"`
	GoogleID       string `json:"googleId" validate:"required"`
	IDToken        string `json:"idToken" validate:"required"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
}

// UpdateAccountRequest is the mutable subset of an account. Other fields
// in the body are ignored.
type UpdateAccountRequest struct {
	Name    *string `json:"name" validate:"omitnil,min=2" msg:"Name must be at least 2 characters"`
	Contact *string `json:"contact" validate:"omitempty,contact" msg:"Contact must be exactly 10 digits"`
	DOB     *string `json:"dob" validate:"omitempty,calendardate"`
}

func (r UpdateAccountRequest) toUpdate() service.ProfileUpdate {
	return service.ProfileUpdate{Name: r.Name, Contact: r.Contact, DOB: r.DOB}
}

// ForgotPasswordRequest represents a password reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password reset confirmation.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6" msg:"Password must be at least 6 characters"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    *model.Account `json:"user"`
}

// UserResponse wraps a single account.
type UserResponse struct {
	Message string         `json:"message,omitempty"`
	User    *model.Account `json:"user"`
}

// ForgotPasswordResponse carries the reset token in development only.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Contact:  req.Contact,
		DOB:      req.DOB,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   session.Token,
		User:    session.Account,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.Account,
	})
}

// GoogleLogin godoc
// @Summary Sign in with a Google identity token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Identity token and profile"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.FederatedLogin(c.Request().Context(), service.FederatedLoginInput{
		Email:          req.Email,
		Name:           req.Name,
		GoogleID:       req.GoogleID,
		IDToken:        req.IDToken,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.Account,
	})
}

// Me godoc
// @Summary Get the current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	account, err := h.userService.GetProfile(c.Request().Context(), caller.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: account})
}

// UpdateMe godoc
// @Summary Update the current account
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.userService.UpdateProfile(c.Request().Context(), caller.ID(), req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{Message: "Profile updated successfully", User: account})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the presented session token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// ForgotPassword godoc
// @Summary Request a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} ForgotPasswordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ForgotPasswordResponse{
		Message:    "Password reset email sent",
		ResetToken: token,
	})
}

// ResetPassword godoc
// @Summary Reset a password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successful"})
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return c.Validate(req)
}

// callerFrom returns the identity attached by the authentication middleware.
func callerFrom(c echo.Context) (auth.Caller, error) {
	caller, ok := auth.CallerFromContext(c.Request().Context())
	if !ok {
		return auth.Caller{}, apperrors.ErrAuthenticationRequired
	}
	return caller, nil
}
