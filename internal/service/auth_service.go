package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"meetconnect/internal/auth"
	"meetconnect/internal/cache"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/logger"
	"meetconnect/internal/model"
	"meetconnect/internal/notify"
	"meetconnect/internal/repository"
)

// federatedSecretBytes sizes the unusable password of federated accounts.
const federatedSecretBytes = 32

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Contact  string
	DOB      string
}

// FederatedLoginInput carries a provider-backed sign-in request.
type FederatedLoginInput struct {
	Email          string
	Name           string
	GoogleID       string
	IDToken        string
	ProfilePicture string
}

// Session is an issued session token and the account it belongs to.
type Session struct {
	Token   string
	Account *model.Account
}

// AuthOptions tunes token lifetimes and reset token exposure.
type AuthOptions struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	// ExposeResetToken returns the reset token to the caller. Development only.
	ExposeResetToken bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	FederatedLogin(ctx context.Context, in FederatedLoginInput) (*Session, error)
	ForgotPassword(ctx context.Context, email string) (resetToken string, err error)
	ResetPassword(ctx context.Context, token, password string) error
	Logout(ctx context.Context, caller auth.Caller) error
}

type authService struct {
	accounts    repository.AccountRepository
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	verifier    auth.FederatedIdentityVerifier
	revocations auth.RevocationStore
	notifier    notify.ResetNotifier
	cache       *cache.Client
	opts        AuthOptions
	now         func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	accounts repository.AccountRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	verifier auth.FederatedIdentityVerifier,
	revocations auth.RevocationStore,
	notifier notify.ResetNotifier,
	cache *cache.Client,
	opts AuthOptions,
) AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = auth.SessionTokenExpiry
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = auth.ResetTokenExpiry
	}
	if verifier == nil {
		verifier = auth.DisabledVerifier{}
	}
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &authService{
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		verifier:    verifier,
		revocations: revocations,
		notifier:    notifier,
		cache:       cache,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a credential account and signs it in.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := model.NormalizeEmail(in.Email)

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Contact:      in.Contact,
		Role:         model.RoleUser,
		Active:       true,
	}
	if in.DOB != "" {
		dob, ok := model.NormalizeDate(in.DOB)
		if !ok {
			return nil, apperrors.Validation(apperrors.FieldError{Field: "dob", Message: "dob must be a valid date", Value: in.DOB})
		}
		account.DOB = dob
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	logger.Log.Infow("account registered", "account_id", account.ID)
	return s.startSession(account)
}

// Login authenticates with email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !account.Active {
		return nil, apperrors.ErrAccountDeactivated
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	account.LastLogin = &now
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	_ = s.cache.Delete(ctx, ProfileCacheKey(account.ID))

	return s.startSession(account)
}

// FederatedLogin signs in with a provider identity token, creating the
// account on first use.
func (s *authService) FederatedLogin(ctx context.Context, in FederatedLoginInput) (*Session, error) {
	claim, err := s.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrFederatedDisabled) {
			return nil, err
		}
		logger.Log.Warnw("identity token rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidIdentityToken, err)
	}
	email := model.NormalizeEmail(in.Email)
	if model.NormalizeEmail(claim.Email) != email {
		return nil, apperrors.ErrInvalidIdentityToken
	}
	if !claim.EmailVerified {
		logger.Log.Warnw("identity token email not verified", "email", email)
		return nil, apperrors.ErrInvalidIdentityToken
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		account, err = s.createFederated(ctx, email, in)
		if err != nil {
			return nil, err
		}
		if account != nil {
			return s.startSession(account)
		}
		// Lost a concurrent first sign-in; the row exists now.
		account, err = s.accounts.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("refetch federated account: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !account.Active {
		return nil, apperrors.ErrAccountDeactivated
	}

	now := s.now()
	account.GoogleID = in.GoogleID
	if in.ProfilePicture != "" {
		account.ProfilePicture = in.ProfilePicture
	}
	account.LastLogin = &now
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update federated account: %w", err)
	}
	_ = s.cache.Delete(ctx, ProfileCacheKey(account.ID))

	return s.startSession(account)
}

// createFederated returns (nil, nil) when another request created the
// account first.
func (s *authService) createFederated(ctx context.Context, email string, in FederatedLoginInput) (*model.Account, error) {
	secret, err := auth.RandomSecret(federatedSecretBytes)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	now := s.now()
	account := &model.Account{
		Name:           in.Name,
		Email:          email,
		PasswordHash:   hash,
		Role:           model.RoleUser,
		Active:         true,
		GoogleID:       in.GoogleID,
		ProfilePicture: in.ProfilePicture,
		LastLogin:      &now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Log.Infow("federated account created concurrently, refetching", "email", email)
			return nil, nil
		}
		return nil, fmt.Errorf("create federated account: %w", err)
	}

	logger.Log.Infow("federated account created", "account_id", account.ID)
	return account, nil
}

// ForgotPassword issues a reset token, stores its digest and hands it to the
// notifier. The token is returned only when ExposeResetToken is set.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNoAccountForEmail
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	token, claims, err := s.tokens.Issue(account.ID, auth.PurposeReset, s.opts.ResetTTL)
	if err != nil {
		return "", err
	}
	digest := auth.HashToken(token)
	expiresAt := claims.ExpiresAt.Time.UTC()
	account.ResetTokenHash = &digest
	account.ResetTokenExpiresAt = &expiresAt

	if err := s.accounts.Update(ctx, account); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	if err := s.notifier.NotifyPasswordReset(ctx, notify.PasswordReset{
		AccountID: account.ID.String(),
		Email:     account.Email,
		Name:      account.Name,
		Token:     token,
		ExpiresAt: expiresAt,
	}); err != nil {
		// An undelivered token must not stay redeemable.
		account.ResetTokenHash = nil
		account.ResetTokenExpiresAt = nil
		if clearErr := s.accounts.Update(ctx, account); clearErr != nil {
			logger.Log.Errorw("clear undelivered reset token failed", "account_id", account.ID, "error", clearErr)
		}
		return "", fmt.Errorf("deliver reset token: %w", err)
	}

	if !s.opts.ExposeResetToken {
		return "", nil
	}
	return token, nil
}

// ResetPassword replaces the password of the account holding an unexpired
// reset token and clears the token.
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.tokens.VerifyPurpose(token, auth.PurposeReset)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	account, err := s.accounts.FindByResetToken(ctx, auth.HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}
	if subject, _ := claims.AccountID(); subject != account.ID {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.ResetTokenHash = nil
	account.ResetTokenExpiresAt = nil

	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	logger.Log.Infow("password reset", "account_id", account.ID)
	return nil
}

// Logout revokes the caller's session token until it would expire. Store
// failures are logged and ignored.
func (s *authService) Logout(ctx context.Context, caller auth.Caller) error {
	if caller.TokenID == "" {
		return nil
	}
	ttl := caller.ExpiresAt.Sub(s.now())
	if err := s.revocations.Revoke(ctx, caller.TokenID, ttl); err != nil {
		logger.Log.Warnw("revoke session token failed", "account_id", caller.ID(), "error", err)
	}
	return nil
}

func (s *authService) startSession(account *model.Account) (*Session, error) {
	token, _, err := s.tokens.Issue(account.ID, auth.PurposeSession, s.opts.SessionTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Account: account}, nil
}
