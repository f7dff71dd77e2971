package sessions

import "time"

// Session is a persistent refresh session. One exists per signed-in device.
type Session struct {
	RefreshToken string    `bson:"refreshToken" json:"refreshToken"`
	UserID       int64     `bson:"userId" json:"userId"`
	ExpiresAt    time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
