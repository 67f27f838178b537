package user

import (
	"context"
	"errors"
	"time"

	"bookscrape/internal/auth"
)

const tokenTTL = 24 * time.Hour

// Service provides registration and login.
type Service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Register hashes the password and stores a new USER-role account.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u := User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         "USER",
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login verifies credentials and returns a signed token. A missing user and
// a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.ID, u.Role, tokenTTL)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}
