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

// MockTagRepository is a mock implementation of repositories.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll() ([]models.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByID(id string) (*models.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) Create(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var admin = policy.Authenticated("admin-1", models.RoleAdmin)

func TestTagService_Create(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	// Punctuation is stripped and the name hyphenated.
	mockRepo.On("SlugExists", "tech-news").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Tag")).Return(nil).Once()

	tag, err := service.Create("Tech News!", admin)
	assert.NoError(t, err)
	assert.Equal(t, "Tech News!", tag.Name)
	assert.Equal(t, "tech-news", tag.Slug)
	mockRepo.AssertExpectations(t)
}

func TestTagService_Create_DuplicateSlugConflicts(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	// "Tech News!" and "tech news" normalize to the same slug; the
	// second create fails.
	mockRepo.On("SlugExists", "tech-news").Return(true, nil).Once()

	_, err := service.Create("tech news", admin)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTagService_Create_AdminOnly(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	_, err := service.Create("Tech News!", policy.Authenticated("user-1", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = service.Create("Tech News!", policy.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTagService_Create_RequiresName(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	_, err := service.Create("   ", admin)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTagService_Delete(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	err := service.Delete("tag-1", policy.Authenticated("user-1", models.RoleUser))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = service.Delete("tag-1", policy.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mockRepo.On("Delete", "tag-1").Return(nil).Once()
	err = service.Delete("tag-1", admin)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "missing").Return(notFoundErr("tag")).Once()
	err = service.Delete("missing", admin)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTagService_List(t *testing.T) {
	mockRepo := new(MockTagRepository)
	service := services.NewTagService(mockRepo)

	expected := []models.Tag{
		{ID: "1", Name: "Go", Slug: "go"},
		{ID: "2", Name: "Tech News!", Slug: "tech-news"},
	}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	tags, err := service.List()
	assert.NoError(t, err)
	assert.Equal(t, expected, tags)
	mockRepo.AssertExpectations(t)
}
