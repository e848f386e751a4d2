package models

import (
	"time"
)

// Image is the metadata record for one stored image file. The stored
// filename is generated independently of the display name and is unique
// across all users; the display name is what rename operates on.
type Image struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	FolderID     string    `json:"folder_id" db:"folder_id"`
	Name         string    `json:"name" db:"name"`
	OriginalName string    `json:"original_name" db:"original_name"`
	Filename     string    `json:"filename" db:"filename"`
	Filepath     string    `json:"-" db:"filepath"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	Size         int64     `json:"size" db:"size_bytes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// URL returns the public path the stored file is served under.
func (i *Image) URL() string {
	return "/uploads/" + i.Filename
}

// ImageResponse is an image record annotated with its serving URL.
type ImageResponse struct {
	Image
	URL string `json:"url"`
}

// NewImageResponse wraps an image record with its computed URL.
func NewImageResponse(img Image) ImageResponse {
	return ImageResponse{Image: img, URL: img.URL()}
}
