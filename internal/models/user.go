package models

import "time"

// Role determines what a user is allowed to administer.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account that can author posts.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never serialized
	Role         Role      `json:"role" gorm:"type:varchar(16);default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
