package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meetconnect/internal/auth"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
	"meetconnect/internal/service"
	"meetconnect/internal/validation"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if s := args.Get(0); s != nil {
		return s.(*service.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if s := args.Get(0); s != nil {
		return s.(*service.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) FederatedLogin(ctx context.Context, in service.FederatedLoginInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if s := args.Get(0); s != nil {
		return s.(*service.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, caller auth.Caller) error {
	return m.Called(ctx, caller).Error(0)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*model.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, update service.ProfileUpdate) (*model.Account, error) {
	args := m.Called(ctx, id, update)
	if a := args.Get(0); a != nil {
		return a.(*model.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInterviewService struct{ mock.Mock }

func (m *MockInterviewService) List(ctx context.Context, ownerID uuid.UUID, filter model.StatusFilter) ([]model.Interview, error) {
	args := m.Called(ctx, ownerID, filter)
	if v := args.Get(0); v != nil {
		return v.([]model.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewService) Create(ctx context.Context, ownerID uuid.UUID, in service.NewInterview) (*model.Interview, error) {
	args := m.Called(ctx, ownerID, in)
	if v := args.Get(0); v != nil {
		return v.(*model.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID)
	if v := args.Get(0); v != nil {
		return v.(*model.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewService) Update(ctx context.Context, id, ownerID uuid.UUID, update service.InterviewUpdate) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID, update)
	if v := args.Get(0); v != nil {
		return v.(*model.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewService) Complete(ctx context.Context, id, ownerID uuid.UUID) (*model.Interview, error) {
	args := m.Called(ctx, id, ownerID)
	if v := args.Get(0); v != nil {
		return v.(*model.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type MockResourceService struct{ mock.Mock }

func (m *MockResourceService) List(ctx context.Context, filter model.ResourceFilter) (*service.ResourcePage, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.(*service.ResourcePage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceService) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceService) Create(ctx context.Context, in service.NewResource, createdBy *uuid.UUID) (*model.Resource, error) {
	args := m.Called(ctx, in, createdBy)
	if v := args.Get(0); v != nil {
		return v.(*model.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResourceService) Import(ctx context.Context, resources []service.NewResource) (int, error) {
	args := m.Called(ctx, resources)
	return args.Int(0), args.Error(1)
}

// newEcho returns an echo instance configured like the server.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(false)
	e.Validator = validation.New()
	return e
}

// withCaller wraps h so the request carries account as the authenticated caller.
func withCaller(account *model.Account, h echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := auth.WithCaller(c.Request().Context(), auth.Caller{Account: account, TokenID: "jti-1"})
		c.SetRequest(c.Request().WithContext(ctx))
		return h(c)
	}
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func fieldNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["errors"].([]any)
	require.True(t, ok, "errors missing from %v", body)
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		names = append(names, item.(map[string]any)["field"].(string))
	}
	return names
}
