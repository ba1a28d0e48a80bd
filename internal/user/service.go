package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLen is the registration password policy floor.
const MinPasswordLen = 7

var (
	ErrPasswordTooShort = errors.New("password must be at least 7 characters")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
)

// CartCreator persists the empty cart that every new user owns.
type CartCreator interface {
	CreateEmpty(ctx context.Context, userID string) (cartID string, err error)
}

type Service struct {
	repo  Repository
	carts CartCreator
}

func NewService(repo Repository, carts CartCreator) *Service {
	return &Service{repo: repo, carts: carts}
}

// Register validates the password policy, hashes the password and persists
// the new user together with an empty cart. Nothing is persisted when
// validation fails.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*User, error) {
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if _, err := s.carts.CreateEmpty(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return u, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}
