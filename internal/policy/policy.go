// Package policy makes authorization decisions. It is pure: functions
// consume an actor and a target and either return nil (permitted) or one
// of the apperrors sentinels. Callers translate the error into a response.
package policy

import (
	"quill/internal/apperrors"
	"quill/internal/models"
)

// Actor is the caller performing an operation: either anonymous or an
// authenticated identity with a role. The zero value is anonymous;
// authenticated actors must be built with Authenticated so the present
// flag cannot be forged from a partially filled literal.
type Actor struct {
	ID      string
	Role    models.Role
	present bool
}

// Anonymous returns the actor for an unauthenticated caller.
func Anonymous() Actor {
	return Actor{}
}

// Authenticated returns the actor for a logged-in user.
func Authenticated(id string, role models.Role) Actor {
	return Actor{ID: id, Role: role, present: true}
}

// IsAnonymous reports whether the actor is unauthenticated.
func (a Actor) IsAnonymous() bool {
	return !a.present
}

// IsAdmin reports whether the actor is an authenticated admin.
func (a Actor) IsAdmin() bool {
	return a.present && a.Role == models.RoleAdmin
}

// CanView decides whether the actor may read the post. Published posts are
// world-readable; drafts are visible only to their author or an admin.
func CanView(actor Actor, post *models.Post) error {
	if post.Status == models.StatusPublished {
		return nil
	}
	return canMutate(actor, post)
}

// CanEdit decides whether the actor may modify the post.
func CanEdit(actor Actor, post *models.Post) error {
	return canMutate(actor, post)
}

// CanDelete decides whether the actor may delete the post.
func CanDelete(actor Actor, post *models.Post) error {
	return canMutate(actor, post)
}

func canMutate(actor Actor, post *models.Post) error {
	if actor.IsAnonymous() {
		return apperrors.ErrUnauthorized
	}
	if actor.Role == models.RoleAdmin || actor.ID == post.AuthorID {
		return nil
	}
	return apperrors.ErrForbidden
}

// RequireAdmin gates admin-only operations: tag mutation and all user
// administration.
func RequireAdmin(actor Actor) error {
	if actor.IsAnonymous() {
		return apperrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanDeleteUser decides whether the actor may delete the target user.
// Admin-only, and an actor may never delete themself.
func CanDeleteUser(actor Actor, targetID string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == targetID {
		return apperrors.ErrSelfDeletion
	}
	return nil
}
