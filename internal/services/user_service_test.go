package services_test

import (
	"testing"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_List_AdminOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	_, err := service.List(policy.Authenticated("user-1", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = service.List(policy.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	expected := []models.User{{ID: "user-1", Name: "Alice"}}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	users, err := service.List(admin)
	assert.NoError(t, err)
	assert.Equal(t, expected, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_Role(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	user := &models.User{ID: "user-1", Name: "Alice", Role: models.RoleUser}
	mockRepo.On("GetByID", "user-1").Return(user, nil)
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	adminRole := models.RoleAdmin
	updated, err := service.Update("user-1", services.UpdateUserInput{Role: &adminRole}, admin)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	// Role values outside the enum are rejected.
	bogus := models.Role("superuser")
	_, err = service.Update("user-1", services.UpdateUserInput{Role: &bogus}, admin)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_Update_AdminOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	adminRole := models.RoleAdmin
	_, err := service.Update("user-1", services.UpdateUserInput{Role: &adminRole}, policy.Authenticated("user-2", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = service.Update("user-1", services.UpdateUserInput{Role: &adminRole}, policy.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUserService_Delete_SelfDeletionGuard(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Deleting your own account always fails, even as admin, and before
	// the repository is touched.
	err := service.Delete("admin-1", admin)
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)

	mockRepo.On("Delete", "user-2").Return(nil).Once()
	err = service.Delete("user-2", admin)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete_AdminOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	err := service.Delete("user-2", policy.Authenticated("user-1", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = service.Delete("user-2", policy.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("Delete", "missing").Return(notFoundErr("user")).Once()

	err := service.Delete("missing", admin)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
