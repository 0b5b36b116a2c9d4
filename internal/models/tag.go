package models

import "time"

// Tag is a label posts reference by ID. Tags are never renamed; a tag
// is created with its slug and lives until an admin deletes it.
type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
