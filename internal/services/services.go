package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateAccount     = errors.New("this email is already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCode          = errors.New("invalid verification code")
	ErrCodeExpired          = errors.New("code has expired")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrPasswordMismatch     = errors.New("old password does not match")
	ErrNoChanges            = errors.New("no changes made")
	ErrInvalidID            = errors.New("invalid id")
	ErrValidation           = errors.New("validation failed")
	ErrProductNotFound      = errors.New("product not found")
	ErrDelivery             = errors.New("failed to send verification email")
	ErrInternal             = errors.New("internal server error")
)

// AccountLockedError is returned while an account is under lockout, or at
// the moment the lockout is imposed.
type AccountLockedError struct {
	RemainingHours int
	JustLocked     bool
}

func (e *AccountLockedError) Error() string {
	if e.JustLocked {
		return "too many attempts! account locked for 24 hours"
	}
	return fmt.Sprintf("account locked. try again after %d hours", e.RemainingHours)
}

// InvalidCredentialsError is returned on a wrong password while attempts
// remain before lockout.
type InvalidCredentialsError struct {
	AttemptsLeft int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid password! %d attempts left", e.AttemptsLeft)
}

// ForbiddenError carries the reason a policy check denied a mutation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }
