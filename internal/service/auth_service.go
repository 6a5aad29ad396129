package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL   = 30 * 24 * time.Hour
	DefaultBcryptCost = 10
)

// AuthConfig holds the process-wide token and hashing settings.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthService handles admin login, token verification and credential bootstrap.
type AuthService struct {
	authRepo repository.Authorization
	activity activityRecorder
	cfg      AuthConfig
}

func NewAuthService(repo repository.Authorization, events repository.EventRepo, cfg AuthConfig, log *logger.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	return &AuthService{
		authRepo: repo,
		activity: activityRecorder{events: events, log: log},
		cfg:      cfg,
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// Login checks credentials and returns a signed token.
// Unknown users and wrong passwords yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	s.activity.record(ctx, models.ContentEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventLogin,
		Description: fmt.Sprintf("%s logged in", u.Username),
		Metadata:    map[string]string{"user_id": u.ID},
	})
	return LoginResult{ID: u.ID, Username: u.Username, Token: token}, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// EnsureAdmin creates the user or refreshes its password. The stored hash is
// only replaced when password no longer matches it, so repeated calls with the
// same value leave the row untouched. Reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, errors.New("admin username is empty")
	}

	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u != nil && (u.PasswordHash == password || verifyPassword(u.PasswordHash, password) == nil) {
		return false, nil
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("invalid password: %w", err)
	}
	if u != nil {
		return false, s.authRepo.UpdatePassword(ctx, u.ID, hash)
	}
	if err := s.authRepo.Create(ctx, models.User{ID: uuid.NewString(), Username: username, PasswordHash: hash}); err != nil {
		return false, err
	}
	return true, nil
}

// hashPassword hashes a plaintext password. A value that already is a bcrypt
// hash is returned unchanged so it is never hashed twice.
func (s *AuthService) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	if _, err := bcrypt.Cost([]byte(password)); err == nil {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// issueToken signs a JWT for a user.
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
