package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/xenitab/go-oidc-middleware/oidctoken"
	"github.com/xenitab/go-oidc-middleware/options"

	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
)

// FederatedClaim is the identity an external provider vouches for.
type FederatedClaim struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// FederatedIdentityVerifier validates an opaque identity token issued by an
// external provider. The returned claim is trusted as-is.
type FederatedIdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*FederatedClaim, error)
}

// OIDCVerifier verifies provider ID tokens against the issuer's published
// JWKS. Firebase and Google sign-in tokens are both plain OIDC ID tokens.
type OIDCVerifier struct {
	tokens *oidctoken.TokenHandler[map[string]any]
}

// NewOIDCVerifier builds a verifier for issuer and audience. Keys are fetched
// lazily on first use so startup does not depend on the provider.
func NewOIDCVerifier(issuer, audience string) (*OIDCVerifier, error) {
	if issuer == "" {
		return nil, errors.New("oidc issuer is required")
	}
	if audience == "" {
		return nil, errors.New("oidc audience is required")
	}

	handler, err := oidctoken.New[map[string]any](nil,
		options.WithIssuer(issuer),
		options.WithRequiredAudience(audience),
		options.WithLazyLoadJwks(true),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise oidc token handler: %w", err)
	}
	return &OIDCVerifier{tokens: handler}, nil
}

// Verify implements FederatedIdentityVerifier.
func (v *OIDCVerifier) Verify(ctx context.Context, idToken string) (*FederatedClaim, error) {
	claims, err := v.tokens.ParseToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidIdentityToken, err)
	}
	return claimFromMap(claims)
}

func claimFromMap(claims map[string]any) (*FederatedClaim, error) {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}

	claim := &FederatedClaim{
		Subject: str("sub"),
		Email:   model.NormalizeEmail(str("email")),
		Name:    str("name"),
		Picture: str("picture"),
	}
	claim.EmailVerified, _ = claims["email_verified"].(bool)

	if claim.Subject == "" || claim.Email == "" {
		return nil, fmt.Errorf("%w: token missing sub or email", apperrors.ErrInvalidIdentityToken)
	}
	return claim, nil
}

// DisabledVerifier rejects every token. It stands in when no provider is configured.
type DisabledVerifier struct{}

// Verify implements FederatedIdentityVerifier.
func (DisabledVerifier) Verify(context.Context, string) (*FederatedClaim, error) {
	return nil, apperrors.ErrFederatedDisabled
}
