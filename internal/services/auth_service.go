package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/clock"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/mailer"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/otp"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

// Fixed security policy. These are deliberately not configurable.
const (
	registrationCodeTTL = 10 * time.Minute
	loginCodeTTL        = 5 * time.Minute
	maxLoginAttempts    = 5
	lockDuration        = 24 * time.Hour
	bcryptCost          = 12

	// SessionTTL is the validity window of a minted session token.
	SessionTTL = 7 * 24 * time.Hour
)

// AuthService drives the account security state machine: registration with
// email verification, OTP-gated login, attempt tracking and lockout.
type AuthService struct {
	users  repository.UserRepository
	mail   mailer.Mailer
	tokens *token.Manager
	clock  clock.Clock
	log    *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, mail mailer.Mailer, tokens *token.Manager, clk clock.Clock, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, mail: mail, tokens: tokens, clock: clk, log: log}
}

// Register creates an unverified account with a fresh 10-minute code and
// mails the code. The account is persisted before dispatch is attempted; a
// delivery failure surfaces to the caller without rolling the account back.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", ErrDuplicateAccount
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	code, err := otp.Generate()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	expires := s.clock.Now().Add(registrationCodeTTL)

	u := &models.User{
		Name:             name,
		Email:            email,
		Password:         string(hash),
		Role:             models.RoleCustomer,
		IsVerified:       false,
		VerificationCode: code,
		CodeExpires:      &expires,
		LoginAttempts:    0,
		CreatedAt:        s.clock.Now(),
	}

	id, err := s.users.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrDuplicateAccount
		}
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.mail.Send(email, "Bazzar Account Verification Code", mailer.VerificationBody(code)); err != nil {
		s.log.Errorw("verification mail dispatch failed", "email", email, "error", err)
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return id.Hex(), nil
}

// VerifyRegistration consumes the registration code and transitions the
// account to verified.
func (s *AuthService) VerifyRegistration(ctx context.Context, email, code string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if u.VerificationCode == "" || u.VerificationCode != code {
		return ErrInvalidCode
	}
	if u.CodeExpires == nil || s.clock.Now().After(*u.CodeExpires) {
		return ErrCodeExpired
	}

	if err := s.users.MarkVerified(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// Login checks the password and, on success, stores and mails a 5-minute
// login code. It never issues a session itself; VerifyLogin does that.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := s.clock.Now()
	if u.LockUntil != nil && u.LockUntil.After(now) {
		remaining := int(math.Ceil(u.LockUntil.Sub(now).Hours()))
		return &AccountLockedError{RemainingHours: remaining}
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return s.recordFailedAttempt(ctx, email, now)
	}

	code, err := otp.Generate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	expires := now.Add(loginCodeTTL)
	if err := s.users.SetLoginCode(ctx, email, code, expires); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.mail.Send(email, "Your Login Verification Code", mailer.LoginCodeBody(code)); err != nil {
		s.log.Errorw("login code dispatch failed", "email", email, "error", err)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// recordFailedAttempt bumps the counter atomically and imposes the lockout
// once the threshold is reached.
func (s *AuthService) recordFailedAttempt(ctx context.Context, email string, now time.Time) error {
	count, err := s.users.IncrementLoginAttempts(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if count >= maxLoginAttempts {
		if err := s.users.Lock(ctx, email, now.Add(lockDuration)); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return &AccountLockedError{RemainingHours: int(lockDuration.Hours()), JustLocked: true}
	}
	return &InvalidCredentialsError{AttemptsLeft: maxLoginAttempts - count}
}

// VerifyLogin consumes the login code and mints a session token. Absent user
// and code mismatch are indistinguishable to the caller; expiry is only
// reported once a matching code is present.
func (s *AuthService) VerifyLogin(ctx context.Context, email, code string) (string, models.PublicUser, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", models.PublicUser{}, ErrInvalidOrExpiredCode
		}
		return "", models.PublicUser{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if u.VerificationCode == "" || u.VerificationCode != code {
		return "", models.PublicUser{}, ErrInvalidOrExpiredCode
	}
	if u.CodeExpires == nil || s.clock.Now().After(*u.CodeExpires) {
		return "", models.PublicUser{}, ErrCodeExpired
	}

	if err := s.users.ClearPendingCode(ctx, email); err != nil {
		return "", models.PublicUser{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	signed, err := s.tokens.Mint(u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return signed, u.Public(), nil
}
