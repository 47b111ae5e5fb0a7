package service

import (
	"github.com/instabill/instabill-api/pkg/apperror"
	"github.com/instabill/instabill-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin dashboard authentication. There is a single
// admin identity: a password (bcrypt hash in config) exchanged for a JWT.
type AuthService struct {
	passwordHash string
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(passwordHash string, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
	}
}

// Login verifies the admin password and issues an access token.
func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", apperror.ErrInvalidCredentials
	}
	return s.jwtManager.GenerateAdminToken()
}

// ValidateToken checks an access token and returns its claims.
func (s *AuthService) ValidateToken(token string) (*utils.AdminClaims, error) {
	claims, err := s.jwtManager.ValidateAdminToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}
