package repositories

import "quill/internal/models"

// PostFilter narrows a post listing. Zero-value fields are ignored.
type PostFilter struct {
	Status   models.PostStatus
	AuthorID string
	Query    string // title substring, case-insensitive
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	GetAll(filter PostFilter) ([]models.Post, error)
	GetByID(id string) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	SlugExists(slug string) (bool, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id string) error
}
