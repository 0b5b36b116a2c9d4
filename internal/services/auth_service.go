package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register creates a new user account with the default role. Emails are
// unique case-insensitively, so they are stored lowercased.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, apperrors.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed JWT. Lookup and password
// failures collapse into one generic error so callers cannot probe which
// emails exist.
func (s *AuthService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ActorFromToken validates a token and builds the authenticated actor
// carried in its claims.
func (s *AuthService) ActorFromToken(tokenString string) (policy.Actor, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return policy.Anonymous(), err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return policy.Anonymous(), fmt.Errorf("token missing user_id claim")
	}
	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		role = models.RoleUser
	}

	return policy.Authenticated(userID, role), nil
}
