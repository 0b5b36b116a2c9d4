package handlers

import (
	"log"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repositories"
	"quill/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service     *services.PostService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService, authService *services.AuthService) *PostHandler {
	return &PostHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the post routes with the Fiber app. Read routes
// take an optional actor so anonymous visitors reach published posts;
// write routes require a token up front.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", middleware.AuthOptional(h.authService), h.HandleList)
	postRoutes.Get("/slug/:slug", middleware.AuthOptional(h.authService), h.HandleGetBySlug)
	postRoutes.Get("/:id", middleware.AuthOptional(h.authService), h.HandleGet)
	postRoutes.Post("/", middleware.AuthRequired(h.authService), h.HandleCreate)
	postRoutes.Patch("/:id", middleware.AuthRequired(h.authService), h.HandleUpdate)
	postRoutes.Delete("/:id", middleware.AuthRequired(h.authService), h.HandleDelete)
}

// HandleList retrieves posts. Anonymous callers only ever see published
// posts; authenticated callers may filter by status, author and title.
func (h *PostHandler) HandleList(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	filter := repositories.PostFilter{
		Status:   models.PostStatus(c.Query("status")),
		AuthorID: c.Query("author_id"),
		Query:    c.Query("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid status filter",
		})
	}

	posts, err := h.service.List(filter, actor)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// HandleGet retrieves a single post by ID.
func (h *PostHandler) HandleGet(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	post, err := h.service.Get(c.Params("id"), actor)
	if err != nil {
		log.Printf("Error getting post %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// HandleGetBySlug retrieves a single post by slug.
func (h *PostHandler) HandleGetBySlug(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	post, err := h.service.GetBySlug(c.Params("slug"), actor)
	if err != nil {
		log.Printf("Error getting post by slug %s: %v", c.Params("slug"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Content    string   `json:"content" validate:"required"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published"`
	Tags       []string `json:"tags"`
}

// HandleCreate creates a new post owned by the caller.
func (h *PostHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	post, err := h.service.Create(services.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Status:     models.PostStatus(req.Status),
		Tags:       req.Tags,
	}, actor)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// UpdatePostRequest represents the request body for a partial post update.
// Absent fields stay untouched.
type UpdatePostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt"`
	CoverImage *string   `json:"cover_image"`
	Status     *string   `json:"status" validate:"omitempty,oneof=draft published"`
	Tags       *[]string `json:"tags"`
}

// HandleUpdate applies a partial update to a post.
func (h *PostHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	patch := services.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		patch.Status = &status
	}

	actor := middleware.ActorFromCtx(c)
	post, err := h.service.Update(c.Params("id"), patch, actor)
	if err != nil {
		log.Printf("Error updating post %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

// HandleDelete deletes a post.
func (h *PostHandler) HandleDelete(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.Params("id"), actor); err != nil {
		log.Printf("Error deleting post %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
