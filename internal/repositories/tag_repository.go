package repositories

import "quill/internal/models"

// TagRepository defines the interface for tag data access. Tags are never
// updated in place; there is no rename operation.
type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetByID(id string) (*models.Tag, error)
	SlugExists(slug string) (bool, error)
	Create(tag *models.Tag) error
	Delete(id string) error
}
