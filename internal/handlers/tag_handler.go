package handlers

import (
	"log"

	"quill/internal/middleware"
	"quill/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service     *services.TagService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService, authService *services.AuthService) *TagHandler {
	return &TagHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app. Listing is
// public; mutation requires a token and the service enforces the admin
// role on top.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", middleware.AuthRequired(h.authService), h.HandleCreate)
	tagRoutes.Delete("/:id", middleware.AuthRequired(h.authService), h.HandleDelete)
}

// HandleList retrieves all tags.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	tags, err := h.service.List()
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// CreateTagRequest represents the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// HandleCreate creates a new tag. Admin only.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create tag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	tag, err := h.service.Create(req.Name, actor)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tag": tag})
}

// HandleDelete deletes a tag. Admin only.
func (h *TagHandler) HandleDelete(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.Params("id"), actor); err != nil {
		log.Printf("Error deleting tag %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Tag deleted successfully",
	})
}
