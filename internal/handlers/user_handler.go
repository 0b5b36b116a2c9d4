package handlers

import (
	"log"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service     *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user administration routes with the Fiber
// app. Every route requires a token; the service enforces the admin role.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users", middleware.AuthRequired(h.authService))
	userRoutes.Get("/", h.HandleList)
	userRoutes.Patch("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList retrieves all users. Admin only.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	users, err := h.service.List(actor)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// UpdateUserRequest represents the request body for updating a user.
type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
	Role *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleUpdate changes a user's role and/or name. Admin only.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	patch := services.UpdateUserInput{Name: req.Name}
	if req.Role != nil {
		role := models.Role(*req.Role)
		patch.Role = &role
	}

	actor := middleware.ActorFromCtx(c)
	user, err := h.service.Update(c.Params("id"), patch, actor)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// HandleDelete deletes a user. Admin only, and never the caller's own
// account.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.Params("id"), actor); err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
