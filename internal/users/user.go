package users

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"fullName" json:"fullName"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	IsVerified   bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
