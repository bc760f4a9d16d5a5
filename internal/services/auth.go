package services

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService handles authentication for the single admin account. The
// account lives in memory; a password change lasts for the session.
type AuthService struct {
	mu           sync.RWMutex
	username     string
	passwordHash string
	secret       []byte
}

// NewAuthService creates an auth service with the configured admin account
func NewAuthService(username, password, secret string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		username:     username,
		passwordHash: string(hash),
		secret:       []byte(secret),
	}, nil
}

// Authenticate checks the admin credentials
func (s *AuthService) Authenticate(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if username != s.username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password and replaces the hash
func (s *AuthService) ChangePassword(username, oldPassword, newPassword string) error {
	if !s.Authenticate(username, oldPassword) {
		return errors.New("invalid username or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.passwordHash = string(hash)
	s.mu.Unlock()
	return nil
}

// GenerateToken generates a JWT token for the admin account
func (s *AuthService) GenerateToken(username string) (string, error) {
	// Token expires in 7 days
	expirationTime := time.Now().Add(7 * 24 * time.Hour)

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "clienthub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
