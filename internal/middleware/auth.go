package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"meetconnect/internal/auth"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/logger"
	"meetconnect/internal/model"
)

// claimsKey is where the token middleware leaves verified claims.
const claimsKey = "meetconnect.claims"

// tokenLookup accepts "Authorization: Bearer <token>" and the legacy
// "x-auth-token: <token>" header.
const tokenLookup = "header:" + echo.HeaderAuthorization + ":Bearer ,header:x-auth-token"

// AccountLoader loads the account a token was issued for.
type AccountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
}

// Authenticator resolves bearer tokens into an auth.Caller on the request
// context.
type Authenticator struct {
	tokens      *auth.TokenService
	accounts    AccountLoader
	revocations auth.RevocationStore
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens *auth.TokenService, accounts AccountLoader, revocations auth.RevocationStore) *Authenticator {
	return &Authenticator{tokens: tokens, accounts: accounts, revocations: revocations}
}

// Required rejects requests without a valid session for an active account.
func (a *Authenticator) Required() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup:    tokenLookup,
		ContextKey:     claimsKey,
		ParseTokenFunc: a.parseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) {
				return appErr
			}
			return apperrors.ErrNoToken
		},
	})
	return chain(verify, a.attach(false))
}

// Optional attaches a caller when a usable token is present and otherwise
// lets the request through anonymously. It never rejects.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup:            tokenLookup,
		ContextKey:             claimsKey,
		ParseTokenFunc:         a.parseToken,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
	return chain(verify, a.attach(true))
}

// RequireAdmin must run after Required or Optional.
func (a *Authenticator) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := auth.CallerFromContext(c.Request().Context())
			if !ok {
				return apperrors.ErrAuthenticationRequired
			}
			if !caller.Account.IsAdmin() {
				return apperrors.ErrAdminRequired
			}
			return next(c)
		}
	}
}

func (a *Authenticator) parseToken(_ echo.Context, token string) (interface{}, error) {
	return a.tokens.VerifyPurpose(token, auth.PurposeSession)
}

// attach turns verified claims into a Caller. In optional mode every failure
// degrades to an anonymous request.
func (a *Authenticator) attach(optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				if optional {
					return next(c)
				}
				return apperrors.ErrNoToken
			}

			caller, err := a.resolve(c.Request().Context(), claims)
			if err != nil {
				if optional {
					logger.Log.Debugw("optional authentication ignored", "error", err)
					return next(c)
				}
				return err
			}

			c.SetRequest(c.Request().WithContext(auth.WithCaller(c.Request().Context(), caller)))
			return next(c)
		}
	}
}

func (a *Authenticator) resolve(ctx context.Context, claims *auth.Claims) (auth.Caller, error) {
	if claims.ID != "" {
		revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Log.Warnw("revocation check failed", "error", err)
		}
		if revoked {
			return auth.Caller{}, apperrors.ErrTokenRevoked
		}
	}

	id, err := claims.AccountID()
	if err != nil {
		return auth.Caller{}, apperrors.ErrTokenInvalid
	}
	account, err := a.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Caller{}, apperrors.ErrCallerNotFound
		}
		return auth.Caller{}, apperrors.Unexpected(err)
	}
	if !account.Active {
		return auth.Caller{}, apperrors.ErrAccountDeactivated
	}

	caller := auth.Caller{Account: account, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		caller.ExpiresAt = claims.ExpiresAt.Time
	}
	return caller, nil
}

func chain(outer, inner echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return outer(inner(next))
	}
}
