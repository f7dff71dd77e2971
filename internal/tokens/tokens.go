package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FarhanAlam-Official/GharSaathi/internal/users"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of an access token.
type Claims struct {
	UserID int64
	Email  string
	Name   string
	Role   string
	Expiry time.Time
}

// Generate creates a signed HS256 access token for the user.
func Generate(secret string, u *users.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"email": u.Email,
		"name":  u.FullName,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry and returns the claims.
func Parse(secret, raw string) (*Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	c := &Claims{UserID: id}
	c.Email, _ = mc["email"].(string)
	c.Name, _ = mc["name"].(string)
	c.Role, _ = mc["role"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.Expiry = exp.Time
	}
	return c, nil
}

// ExpiryOf extracts the exp claim without verifying the signature. Used to
// compute the remaining TTL when blacklisting a token at logout.
func ExpiryOf(raw string) (time.Time, error) {
	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrInvalidToken
	}
	return exp.Time, nil
}
