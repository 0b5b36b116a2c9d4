package repositories

import (
	"errors"
	"fmt"

	"quill/internal/apperrors"
	"quill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// GetAll retrieves all tags sorted by name.
func (r *GORMTagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tags: %w", err)
	}
	return tags, nil
}

// GetByID retrieves a tag by its ID from the database.
func (r *GORMTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag by ID %s: %w", id, err)
	}
	return &tag, nil
}

// SlugExists reports whether any tag already holds the slug.
func (r *GORMTagRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Tag{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tag slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// Create creates a new tag in the database. Duplicate names or slugs
// surface as a conflict.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tag %s: %w", tag.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Delete deletes a tag by its ID. Posts referencing the tag keep the
// dangling ID; there is no cascade cleanup.
func (r *GORMTagRepository) Delete(id string) error {
	res := r.db.Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tag with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
