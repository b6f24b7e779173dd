package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindConflict:        http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindUnexpected:      http.StatusInternalServerError,
		Kind("bogus"):       http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, StatusFor(kind), kind)
	}
}

func TestMapError(t *testing.T) {
	wrapped := fmt.Errorf("find interview: %w", ErrInterviewNotFound)
	assert.Same(t, ErrInterviewNotFound, MapError(wrapped))
	assert.True(t, stderrors.Is(wrapped, ErrInterviewNotFound))

	cause := stderrors.New("connection refused")
	mapped := MapError(cause)
	assert.Equal(t, KindUnexpected, mapped.Kind)
	assert.ErrorIs(t, mapped, cause)
}

func TestToErrorResponse(t *testing.T) {
	err := Unexpected(stderrors.New("dial tcp: refused"))

	assert.Empty(t, err.ToErrorResponse(false).Error)
	assert.Equal(t, "dial tcp: refused", err.ToErrorResponse(true).Error)
	assert.Empty(t, ErrInvalidCredentials.ToErrorResponse(true).Error, "only unexpected errors expose a cause")
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expose     bool
		wantStatus int
		wantBody   ErrorResponse
	}{
		{
			name:       "domain error",
			err:        ErrAdminRequired,
			wantStatus: http.StatusForbidden,
			wantBody:   ErrorResponse{Message: "Access denied. Admin privileges required."},
		},
		{
			name:       "validation fields",
			err:        Validation(FieldError{Field: "time", Message: "Time must be in HH:MM format", Value: "25:61"}),
			wantStatus: http.StatusBadRequest,
			wantBody: ErrorResponse{
				Message: "Validation failed",
				Errors:  []FieldError{{Field: "time", Message: "Time must be in HH:MM format", Value: "25:61"}},
			},
		},
		{
			name:       "echo error wrapping domain error",
			err:        echo.NewHTTPError(http.StatusUnauthorized, "jwt").SetInternal(ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrorResponse{Message: "Token has expired"},
		},
		{
			name:       "plain echo error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   ErrorResponse{Message: "Method Not Allowed"},
		},
		{
			name:       "unknown error hidden",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorResponse{Message: "Server error"},
		},
		{
			name:       "unknown error exposed",
			err:        stderrors.New("boom"),
			expose:     true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorResponse{Message: "Server error", Error: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(tt.expose)(tt.err, c)

			require.Equal(t, tt.wantStatus, rec.Code)
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusTeapot, "already sent"))

	NewHTTPErrorHandler(false)(ErrInterviewNotFound, c)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "already sent", rec.Body.String())
}
