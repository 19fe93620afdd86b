package handler

import "github.com/contentdesk/cms/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createPostRequest is validated by the post service after the create
// policy has run, so an anonymous caller sees 401 rather than 400.
type createPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Author  string   `json:"author,omitempty"`
	Status  string   `json:"status,omitempty" enums:"draft,published"`
	Tags    []string `json:"tags,omitempty"`
	Image   string   `json:"image,omitempty"`
}

// updatePostRequest is a partial update. author and views are not
// writable through the API.
type updatePostRequest struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Status  *string   `json:"status,omitempty" enums:"draft,published"`
	Tags    *[]string `json:"tags,omitempty"`
	Image   *string   `json:"image,omitempty"`
}

type postPageResponse struct {
	Docs       []*domain.Post `json:"docs"`
	TotalDocs  int64          `json:"totalDocs"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}
