package services

import (
	"fmt"
	"strings"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repositories"
	"quill/internal/slug"
)

// TagService handles business logic related to tags. Creation and
// deletion are admin-only; tags are never renamed.
type TagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// List retrieves all tags sorted by name. Public.
func (s *TagService) List() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

// Create creates a new tag with a slug derived from its name. Two names
// that normalize to the same slug conflict.
func (s *TagService) Create(name string, actor policy.Actor) (*models.Tag, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("tag name is required: %w", apperrors.ErrValidation)
	}

	tagSlug := slug.Make(name)
	exists, err := s.tagRepo.SlugExists(tagSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag slug: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("tag with slug %s: %w", tagSlug, apperrors.ErrConflict)
	}

	tag := &models.Tag{
		Name: strings.TrimSpace(name),
		Slug: tagSlug,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag. Posts referencing it keep the dangling tag ID;
// there is no cascade cleanup.
func (s *TagService) Delete(id string, actor policy.Actor) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	return s.tagRepo.Delete(id)
}
