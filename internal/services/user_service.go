package services

import (
	"fmt"

	"quill/internal/apperrors"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repositories"
)

// UserService handles user administration. Every operation is admin-only.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// List retrieves all users. Password hashes never serialize.
func (s *UserService) List(actor policy.Actor) ([]models.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll()
}

// UpdateUserInput carries a partial user update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	Name *string
	Role *models.Role
}

// Update changes a user's role and/or name.
func (s *UserService) Update(id string, patch UpdateUserInput, actor policy.Actor) (*models.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, fmt.Errorf("invalid role %q: %w", *patch.Role, apperrors.ErrValidation)
		}
		user.Role = *patch.Role
	}
	if patch.Name != nil && *patch.Name != "" {
		user.Name = *patch.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. The self-deletion guard runs before the target
// is even looked up, so an admin deleting themself always fails the same
// way whether or not the record still exists.
func (s *UserService) Delete(id string, actor policy.Actor) error {
	if err := policy.CanDeleteUser(actor, id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
