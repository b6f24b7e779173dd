package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetconnect/internal/errors"
)

func TestClaimFromMap(t *testing.T) {
	claim, err := claimFromMap(map[string]any{
		"sub":            "google-123",
		"email":          "Jane@X.com",
		"email_verified": true,
		"name":           "Jane Doe",
		"picture":        "https://example.com/p.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "google-123", claim.Subject)
	assert.Equal(t, "jane@x.com", claim.Email)
	assert.True(t, claim.EmailVerified)
	assert.Equal(t, "Jane Doe", claim.Name)

	_, err = claimFromMap(map[string]any{"sub": "google-123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentityToken)
}

func TestNewOIDCVerifier_RequiresSettings(t *testing.T) {
	_, err := NewOIDCVerifier("", "aud")
	assert.Error(t, err)
	_, err = NewOIDCVerifier("https://securetoken.google.com/p", "")
	assert.Error(t, err)
}

func TestDisabledVerifier(t *testing.T) {
	_, err := DisabledVerifier{}.Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, apperrors.ErrFederatedDisabled)
}
