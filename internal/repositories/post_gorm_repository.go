package repositories

import (
	"errors"
	"fmt"
	"strings"

	"quill/internal/apperrors"
	"quill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// GetAll retrieves posts matching the filter, newest first.
func (r *GORMPostRepository) GetAll(filter PostFilter) ([]models.Post, error) {
	q := r.db.Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a single post by its ID from the database.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// GetBySlug retrieves a single post by its slug from the database.
func (r *GORMPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with slug %s: %w", slug, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug %s: %w", slug, err)
	}
	return &post, nil
}

// SlugExists reports whether any post already holds the slug.
func (r *GORMPostRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// Create creates a new post in the database. A duplicate slug, possible
// when two submissions race the check-then-assign sequence, surfaces as a
// conflict.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("post with slug %s: %w", post.Slug, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// Update updates an existing post in the database.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Save(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s: %w", post.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a post by its ID from the database.
func (r *GORMPostRepository) Delete(id string) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
