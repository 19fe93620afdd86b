package domain

import "time"

// ImageSize describes one derived rendition recorded for an upload.
type ImageSize struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultImageSizes are the renditions declared for every image upload.
var DefaultImageSizes = []ImageSize{
	{Name: "thumbnail", Width: 300, Height: 300},
	{Name: "square", Width: 500, Height: 500},
	{Name: "fullSize", Width: 1280, Height: 720},
}

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// AllowedMimeType reports whether uploads of type mt are accepted.
func AllowedMimeType(mt string) bool {
	_, ok := allowedMimeTypes[mt]
	return ok
}

// Media is the metadata of an uploaded image. File bytes live elsewhere.
type Media struct {
	ID        string      `json:"id"`
	Alt       string      `json:"alt"`
	Filename  string      `json:"filename"`
	MimeType  string      `json:"mimeType"`
	Filesize  int64       `json:"filesize"`
	Sizes     []ImageSize `json:"sizes"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Field exposes the filterable attributes of a media item.
func (m *Media) Field(name string) string {
	if name == FieldID {
		return m.ID
	}
	return ""
}
