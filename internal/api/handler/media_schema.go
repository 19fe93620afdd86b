package handler

import "github.com/contentdesk/cms/internal/core/domain"

// Media payloads are validated by the service once access is granted.
type createMediaRequest struct {
	Alt      string `json:"alt"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType" enums:"image/jpeg,image/png,image/webp,image/gif"`
	Filesize int64  `json:"filesize"`
}

type updateMediaRequest struct {
	Alt string `json:"alt"`
}

type mediaPageResponse struct {
	Docs       []*domain.Media `json:"docs"`
	TotalDocs  int64           `json:"totalDocs"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}
