// Package auth implements login and bearer-token verification for the three
// fixed application roles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
// so login responses do not leak which part failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidToken indicates a missing, malformed or expired bearer token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT payload carried by every authenticated request.
type Claims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies tokens against the user collection.
type Service struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(users repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// LoginResult is returned to the client on successful authentication.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login checks the password and issues a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return &LoginResult{Token: token, User: *user}, nil
}

// ParseToken verifies a bearer token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SeedDefaultUsers creates the built-in accounts when the user collection is
// empty, one per role.
func (s *Service) SeedDefaultUsers(ctx context.Context, defaultPassword string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	defaults := []models.User{
		{Name: "Bapak Hadi", Username: "owner", Role: models.RoleOwner},
		{Name: "Ibu Siti", Username: "admin", Role: models.RoleWarehouseAdmin},
		{Name: "Mas Budi", Username: "produksi", Role: models.RoleProductionStaff},
	}

	for _, u := range defaults {
		u.ID = uuid.New().String()
		u.PasswordHash = string(hash)
		u.CreatedAt = s.now()
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	s.logger.Info("seeded default users", zap.Int("count", len(defaults)))
	return nil
}
