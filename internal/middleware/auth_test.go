package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"meetconnect/internal/auth"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
)

type MockAccountLoader struct {
	mock.Mock
}

func (m *MockAccountLoader) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type authFixture struct {
	tokens      *auth.TokenService
	accounts    *MockAccountLoader
	revocations *MockRevocationStore
	e           *echo.Echo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		tokens:      auth.NewTokenService("test-secret"),
		accounts:    new(MockAccountLoader),
		revocations: new(MockRevocationStore),
		e:           echo.New(),
	}
	f.e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(false)

	a := NewAuthenticator(f.tokens, f.accounts, f.revocations)
	whoami := func(c echo.Context) error {
		caller, ok := auth.CallerFromContext(c.Request().Context())
		if !ok {
			return c.JSON(http.StatusOK, echo.Map{"anonymous": true})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": caller.ID().String(), "tokenId": caller.TokenID})
	}
	f.e.GET("/required", whoami, a.Required())
	f.e.GET("/optional", whoami, a.Optional())
	f.e.GET("/admin", whoami, a.Required(), a.RequireAdmin())
	f.e.GET("/optional-admin", whoami, a.Optional(), a.RequireAdmin())
	return f
}

func (f *authFixture) session(t *testing.T, id uuid.UUID) (string, *auth.Claims) {
	t.Helper()
	token, claims, err := f.tokens.Issue(id, auth.PurposeSession, time.Hour)
	require.NoError(t, err)
	return token, claims
}

func (f *authFixture) do(path string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequired(t *testing.T) {
	f := newAuthFixture(t)

	active := &model.Account{ID: uuid.New(), Role: model.RoleUser, Active: true}
	inactive := &model.Account{ID: uuid.New(), Role: model.RoleUser, Active: false}
	ghost := uuid.New()
	revoked := uuid.New()

	activeToken, activeClaims := f.session(t, active.ID)
	inactiveToken, _ := f.session(t, inactive.ID)
	ghostToken, _ := f.session(t, ghost)
	revokedToken, revokedClaims := f.session(t, revoked)
	resetToken, _, err := f.tokens.Issue(active.ID, auth.PurposeReset, time.Hour)
	require.NoError(t, err)

	expiredSvc := auth.NewTokenService("test-secret")
	expiredToken := func() string {
		tok, _, err := expiredSvc.Issue(active.ID, auth.PurposeSession, -time.Minute)
		require.NoError(t, err)
		return tok
	}()

	f.revocations.On("IsRevoked", mock.Anything, revokedClaims.ID).Return(true, nil)
	f.revocations.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	f.accounts.On("FindByID", mock.Anything, active.ID).Return(active, nil)
	f.accounts.On("FindByID", mock.Anything, inactive.ID).Return(inactive, nil)
	f.accounts.On("FindByID", mock.Anything, ghost).Return(nil, gorm.ErrRecordNotFound)

	tests := []struct {
		name        string
		headers     map[string]string
		wantStatus  int
		wantMessage string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized, wantMessage: "No token, authorization denied"},
		{name: "bearer without value", headers: map[string]string{"Authorization": "Basic abc"}, wantStatus: http.StatusUnauthorized, wantMessage: "No token, authorization denied"},
		{name: "bearer header", headers: map[string]string{"Authorization": "Bearer " + activeToken}, wantStatus: http.StatusOK},
		{name: "legacy header", headers: map[string]string{"x-auth-token": activeToken}, wantStatus: http.StatusOK},
		{name: "tampered", headers: map[string]string{"Authorization": "Bearer " + activeToken + "x"}, wantStatus: http.StatusUnauthorized, wantMessage: "Token is not valid"},
		{name: "expired", headers: map[string]string{"Authorization": "Bearer " + expiredToken}, wantStatus: http.StatusUnauthorized, wantMessage: "Token has expired"},
		{name: "reset token as bearer", headers: map[string]string{"Authorization": "Bearer " + resetToken}, wantStatus: http.StatusUnauthorized, wantMessage: "Token is not valid"},
		{name: "revoked", headers: map[string]string{"Authorization": "Bearer " + revokedToken}, wantStatus: http.StatusUnauthorized, wantMessage: "Token has been revoked"},
		{name: "account gone", headers: map[string]string{"Authorization": "Bearer " + ghostToken}, wantStatus: http.StatusUnauthorized, wantMessage: "User not found"},
		{name: "deactivated", headers: map[string]string{"Authorization": "Bearer " + inactiveToken}, wantStatus: http.StatusForbidden, wantMessage: "Account is deactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := f.do("/required", tt.headers)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
				assert.Equal(t, false, body["success"])
				return
			}
			assert.Equal(t, active.ID.String(), body["id"])
			assert.Equal(t, activeClaims.ID, body["tokenId"])
		})
	}
}

func TestOptional_NeverRejects(t *testing.T) {
	f := newAuthFixture(t)
	active := &model.Account{ID: uuid.New(), Active: true}
	inactive := &model.Account{ID: uuid.New(), Active: false}
	activeToken, _ := f.session(t, active.ID)
	inactiveToken, _ := f.session(t, inactive.ID)

	f.revocations.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	f.accounts.On("FindByID", mock.Anything, active.ID).Return(active, nil)
	f.accounts.On("FindByID", mock.Anything, inactive.ID).Return(inactive, nil)

	rec, body := f.do("/optional", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["anonymous"])

	rec, body = f.do("/optional", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["anonymous"])

	rec, body = f.do("/optional", map[string]string{"x-auth-token": inactiveToken})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["anonymous"])

	rec, body = f.do("/optional", map[string]string{"Authorization": "Bearer " + activeToken})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, active.ID.String(), body["id"])
}

func TestRequireAdmin(t *testing.T) {
	f := newAuthFixture(t)
	user := &model.Account{ID: uuid.New(), Role: model.RoleUser, Active: true}
	admin := &model.Account{ID: uuid.New(), Role: model.RoleAdmin, Active: true}
	userToken, _ := f.session(t, user.ID)
	adminToken, _ := f.session(t, admin.ID)

	f.revocations.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	f.accounts.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.accounts.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

	rec, body := f.do("/admin", map[string]string{"Authorization": "Bearer " + userToken})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Admin privileges required.", body["message"])

	rec, _ = f.do("/admin", map[string]string{"Authorization": "Bearer " + adminToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = f.do("/optional-admin", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", body["message"])
}
