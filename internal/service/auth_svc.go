package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/pkg/auth"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id uint) (*domain.User, error)
}

type AuthSvc struct {
	store    UserStore
	tokenTTL time.Duration
}

func NewAuthSvc(store UserStore, tokenTTL time.Duration) *AuthSvc {
	return &AuthSvc{store: store, tokenTTL: tokenTTL}
}

func (s *AuthSvc) Register(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	r := domain.Role(role)
	if r != domain.RoleUser && r != domain.RoleOwner {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), Name: name, Role: r}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	}
	return u, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.store.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthorized
	}
	access, err := auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, access, nil
}

func (s *AuthSvc) ByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.store.ByID(ctx, id)
}
