package services_test

import (
	"fmt"
	"testing"
	"time"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration stores the lowercased email and a bcrypt
	// hash, never the plaintext password.
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("Alice", "Alice@Example.COM", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Duplicate email is a conflict.
	mockRepo.On("GetByEmail", "alice@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register("Alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           "user-123",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}

	// Successful login issues a token carrying the user ID and role.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown email collapse into the same error.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("user")).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ActorFromToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, _ := token.SignedString([]byte(testJWTSecret))

	actor, err := authService.ActorFromToken(tokenString)
	assert.NoError(t, err)
	assert.False(t, actor.IsAnonymous())
	assert.Equal(t, "user-123", actor.ID)
	assert.True(t, actor.IsAdmin())

	// Garbage token yields the anonymous actor and an error.
	actor, err = authService.ActorFromToken("invalid.token.string")
	assert.Error(t, err)
	assert.True(t, actor.IsAnonymous())

	// Expired token is rejected.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	actor, err = authService.ActorFromToken(expiredString)
	assert.Error(t, err)
	assert.True(t, actor.IsAnonymous())

	// Unknown role claim degrades to plain user, never admin.
	weird := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "superuser",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	weirdString, _ := weird.SignedString([]byte(testJWTSecret))
	actor, err = authService.ActorFromToken(weirdString)
	assert.NoError(t, err)
	assert.False(t, actor.IsAdmin())
	assert.Equal(t, models.RoleUser, actor.Role)
}
