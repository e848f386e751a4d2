package services

import (
	"context"
	"io"

	"pixelbin/internal/domain/models"
)

// ImageService handles image metadata business logic
type ImageService interface {
	// UploadImage stores the file and inserts its metadata record
	UploadImage(ctx context.Context, req *UploadImageRequest) (*models.Image, error)

	// GetImage retrieves one image record
	GetImage(ctx context.Context, id, userID string) (*models.Image, error)

	// ListImages pages through a folder's images, or all of the user's
	// images when FolderID is nil, newest first
	ListImages(ctx context.Context, req *ListImagesRequest) (*models.SearchResults, error)

	// SearchImages matches images by substring, optionally scoped to a
	// folder subtree
	SearchImages(ctx context.Context, req *SearchImagesRequest) (*models.SearchResults, error)

	// RenameImage changes an image's display name
	RenameImage(ctx context.Context, id, userID, newName string) (*models.Image, error)

	// MoveImage moves an image into another folder owned by the same user
	MoveImage(ctx context.Context, id, userID, folderID string) (*models.Image, error)

	// DeleteImage removes the record and best-effort removes the stored file
	DeleteImage(ctx context.Context, id, userID string) error
}

// UploadImageRequest carries the metadata and content of one upload
type UploadImageRequest struct {
	UserID       string
	FolderID     string
	Name         string
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// ListImagesRequest selects one page of a folder or account listing
type ListImagesRequest struct {
	UserID   string
	FolderID *string // nil = all folders
	Page     int
	PageSize int
}

// SearchImagesRequest carries one search invocation
type SearchImagesRequest struct {
	UserID   string
	Query    string
	FolderID *string // nil = unscoped; else the subtree root
	Page     int
	PageSize int
}
