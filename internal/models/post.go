package models

import "time"

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post is an article written by a user. The slug is unique and immutable
// once assigned. PublishedAt is set the first time the post transitions to
// published and is never cleared, even if the post is set back to draft.
//
// Tags holds an ordered list of tag IDs. Deleting a tag leaves its ID
// dangling here; readers must tolerate IDs that no longer resolve.
type Post struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string     `json:"title" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;type:varchar(220)"`
	Content     string     `json:"content" gorm:"type:text" validate:"required"`
	Excerpt     string     `json:"excerpt,omitempty" gorm:"type:text"`
	CoverImage  string     `json:"cover_image,omitempty" gorm:"type:varchar(512)"`
	ReadingTime int        `json:"reading_time"`
	Status      PostStatus `json:"status" gorm:"type:varchar(16);default:draft;index"`
	AuthorID    string     `json:"author_id" gorm:"type:varchar(36);index"`
	Tags        []string   `json:"tags" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
