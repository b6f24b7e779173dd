package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "meetconnect/internal/errors"
)

const (
	// SessionTokenExpiry is the default lifetime of bearer tokens.
	SessionTokenExpiry = 7 * 24 * time.Hour
	// ResetTokenExpiry is the default lifetime of password-reset tokens.
	ResetTokenExpiry = time.Hour
)

// Token purposes. A token is only accepted where its purpose matches.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

// Claims represents JWT claims.
type Claims struct {
	UserID  string `json:"userId"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// AccountID parses the subject as an account id.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TTL returns how long the token stays valid from now; zero once expired.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// TokenService issues and verifies HMAC-signed, time-limited tokens.
// Verification is pure: it never touches a store.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a new token service with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a token for subject that expires after ttl.
func (s *TokenService) Issue(subject uuid.UUID, purpose string, ttl time.Duration) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID:  subject.String(),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// Verify validates a token and returns its claims. Expired tokens fail with
// ErrTokenExpired, anything else with ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, fmt.Errorf("%w: malformed subject", apperrors.ErrTokenInvalid)
	}
	return claims, nil
}

// VerifyPurpose is Verify plus a purpose check.
func (s *TokenService) VerifyPurpose(tokenString, purpose string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: unexpected purpose %q", apperrors.ErrTokenInvalid, claims.Purpose)
	}
	return claims, nil
}

// HashToken returns the hex SHA-256 of a token, used to persist reset tokens
// without storing them in clear.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
