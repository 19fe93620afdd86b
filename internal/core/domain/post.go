package domain

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Record field names understood by access filters and repositories.
const (
	FieldID     = "id"
	FieldAuthor = "author"
	FieldStatus = "status"
)

// Post is the core content aggregate.
//
// Author is assigned once at creation from the creating actor and is never
// rewritten by updates. Views only grows, one step per qualifying read.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	Status    PostStatus `json:"status"`
	Tags      []string   `json:"tags"`
	Image     string     `json:"image,omitempty"`
	Views     int64      `json:"views"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Field exposes the filterable attributes of a post.
func (p *Post) Field(name string) string {
	switch name {
	case FieldID:
		return p.ID
	case FieldAuthor:
		return p.Author
	case FieldStatus:
		return string(p.Status)
	}
	return ""
}
