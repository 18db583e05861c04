package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
)

// ProfileUpdate holds the optional profile fields a user may change.
type ProfileUpdate struct {
	Name    string
	Phone   string
	Image   string
	Address string
}

// UserService covers the authenticated account endpoints outside the
// security state machine: profile and password updates.
type UserService struct {
	users repository.UserRepository
	log   *zap.SugaredLogger
}

func NewUserService(users repository.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, log: log}
}

// UpdateProfile applies a partial update of the caller's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	fields := bson.M{}
	if upd.Name != "" {
		fields["name"] = upd.Name
	}
	if upd.Phone != "" {
		fields["phone"] = upd.Phone
	}
	if upd.Image != "" {
		fields["image"] = upd.Image
	}
	if upd.Address != "" {
		fields["address"] = upd.Address
	}
	if len(fields) == 0 {
		return ErrNoChanges
	}

	modified, err := s.users.UpdateFields(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if modified == 0 {
		return ErrNoChanges
	}
	return nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if _, err := s.users.UpdateFields(ctx, id, bson.M{"password": string(hash)}); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
