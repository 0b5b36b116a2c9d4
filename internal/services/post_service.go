package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repositories"
	"quill/internal/slug"
)

// wordsPerMinute is the reading speed used for the reading-time estimate.
const wordsPerMinute = 200

// EventPublisher publishes domain events to the message broker.
// *rabbitmq.Client satisfies it; tests substitute a mock.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// PostService handles business logic related to posts: authorization,
// slug assignment, status transitions and lifecycle events.
type PostService struct {
	postRepo repositories.PostRepository
	events   EventPublisher
}

// NewPostService creates a new PostService. events may be nil when no
// broker is available; publishing is then skipped.
func NewPostService(postRepo repositories.PostRepository, events EventPublisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		events:   events,
	}
}

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CoverImage string
	Status     models.PostStatus
	Tags       []string
}

// UpdatePostInput carries a partial post update. Nil fields are left
// untouched.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Status     *models.PostStatus
	Tags       *[]string
}

// List retrieves posts matching the filter. Anonymous callers are forced
// to published posts regardless of the requested status; authenticated
// callers may request any status.
func (s *PostService) List(filter repositories.PostFilter, actor policy.Actor) ([]models.Post, error) {
	if actor.IsAnonymous() {
		filter.Status = models.StatusPublished
	}
	return s.postRepo.GetAll(filter)
}

// Get retrieves a single post, enforcing the view policy: drafts are
// visible only to their author or an admin.
func (s *PostService) Get(id string, actor policy.Actor) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanView(actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug retrieves a single post by slug, enforcing the view policy.
func (s *PostService) GetBySlug(postSlug string, actor policy.Actor) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if err := policy.CanView(actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Create creates a new post owned by the actor. The slug is derived from
// the title and made unique with an incrementing counter on collision.
// PublishedAt is set when the post is created already published.
func (s *PostService) Create(input CreatePostInput, actor policy.Actor) (*models.Post, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q: %w", input.Status, apperrors.ErrValidation)
	}

	assigned, err := slug.Unique(slug.Make(input.Title), s.postRepo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("failed to assign slug: %w", err)
	}

	post := &models.Post{
		Title:       input.Title,
		Slug:        assigned,
		Content:     input.Content,
		Excerpt:     input.Excerpt,
		CoverImage:  input.CoverImage,
		ReadingTime: estimateReadingTime(input.Content),
		Status:      status,
		AuthorID:    actor.ID,
		Tags:        input.Tags,
	}
	if status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	if post.Status == models.StatusPublished {
		s.publishPostEvent(post)
	}
	return post, nil
}

// Update applies a partial update, enforcing the edit policy. The slug is
// never regenerated. PublishedAt is assigned only on the first transition
// to published and survives any later status changes, including demotion
// back to draft, which the write path accepts.
func (s *PostService) Update(id string, patch UpdatePostInput, actor policy.Actor) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanEdit(actor, post); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
		}
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, fmt.Errorf("content is required: %w", apperrors.ErrValidation)
		}
		post.Content = *patch.Content
		post.ReadingTime = estimateReadingTime(post.Content)
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.CoverImage != nil {
		post.CoverImage = *patch.CoverImage
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}

	firstPublish := false
	if patch.Status != nil && *patch.Status != post.Status {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("invalid status %q: %w", *patch.Status, apperrors.ErrValidation)
		}
		post.Status = *patch.Status
		if post.Status == models.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
			firstPublish = true
		}
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	if firstPublish {
		s.publishPostEvent(post)
	}
	return post, nil
}

// Delete removes a post, enforcing the delete policy.
func (s *PostService) Delete(id string, actor policy.Actor) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := policy.CanDelete(actor, post); err != nil {
		return err
	}
	return s.postRepo.Delete(post.ID)
}

// publishPostEvent emits a post.published event. Broker failures are
// logged, never surfaced: publication of the post itself already
// succeeded.
func (s *PostService) publishPostEvent(post *models.Post) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping post event publication.")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"postID":   post.ID,
		"slug":     post.Slug,
		"authorID": post.AuthorID,
		"title":    post.Title,
	})
	if err != nil {
		log.Printf("Failed to marshal post event for post %s: %v", post.ID, err)
		return
	}

	if err := s.events.Publish("", "post_events", body); err != nil {
		log.Printf("Warning: Failed to publish post event for post %s: %v", post.ID, err)
		return
	}
	log.Printf("Published post event for post %s", post.ID)
}

func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}
