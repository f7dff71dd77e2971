package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering with an address that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown addresses and
	// wrong passwords so the two are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service encapsulates account business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// RegisterParams carries the fields needed to create an account.
type RegisterParams struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	PhoneNumber string
}

// Register creates an account with a bcrypt password hash. Email matching is
// case-insensitive; addresses are stored lowercased.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:        email,
		FullName:     strings.TrimSpace(p.FullName),
		PasswordHash: string(hash),
		Role:         p.Role,
		PhoneNumber:  p.PhoneNumber,
		IsActive:     true,
		IsVerified:   true,
	}
	return s.repo.Create(ctx, u)
}

// Authenticate verifies email/password and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID loads a user; nil when not found.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
