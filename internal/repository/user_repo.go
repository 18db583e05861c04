package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository is the store surface the account security state machine
// runs on. Every read-modify-write that touches the failed-attempt counter
// or the lockout transition must be applied with per-document atomicity.
type UserRepository interface {
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// MarkVerified sets the verified flag and clears the pending code fields.
	MarkVerified(ctx context.Context, email string) error

	// SetLoginCode stores a fresh login code, overwriting any pending one,
	// and resets the failed-attempt counter.
	SetLoginCode(ctx context.Context, email, code string, expires time.Time) error

	// ClearPendingCode removes the pending code and its expiry.
	ClearPendingCode(ctx context.Context, email string) error

	// IncrementLoginAttempts atomically bumps the failed-attempt counter and
	// returns the new value.
	IncrementLoginAttempts(ctx context.Context, email string) (int, error)

	// Lock sets the lockout deadline and resets the counter to zero.
	Lock(ctx context.Context, email string, until time.Time) error

	// UpdateFields applies a partial $set on the user document and reports
	// how many documents were modified.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
}
