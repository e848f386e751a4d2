package services

import (
	"context"

	"pixelbin/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder with its computed path
	GetFolder(ctx context.Context, id, userID string) (*models.Folder, error)

	// UpdateFolder updates a folder (rename and/or move)
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder, its descendant folders, and every
	// image they contain
	DeleteFolder(ctx context.Context, id, userID string) error

	// ListChildren lists child folders and images at the given level
	ListChildren(ctx context.Context, folderID *string, userID string) (*models.FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID   string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	UserID   string  `json:"-"`
	Name     *string `json:"name,omitempty"`      // rename
	ParentID *string `json:"parent_id,omitempty"` // move (use empty string for root)
}
