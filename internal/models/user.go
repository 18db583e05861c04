package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// User is an account document in the users collection. The pending
// verification code and its expiry are always set or cleared together.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Role             string             `bson:"role" json:"role"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	IsVerified       bool               `bson:"isVerified" json:"isVerified"`
	VerificationCode string             `bson:"verificationCode,omitempty" json:"-"`
	CodeExpires      *time.Time         `bson:"codeExpires,omitempty" json:"-"`
	LoginAttempts    int                `bson:"loginAttempts" json:"-"`
	LockUntil        *time.Time         `bson:"lockUntil,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the projection returned to clients after login. It never
// carries the password hash or any security state.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
