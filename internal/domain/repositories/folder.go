package repositories

import (
	"context"

	"pixelbin/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every method is scoped to one owner; a row belonging to another user
// behaves exactly as if it did not exist.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Update updates a folder (rename and/or reparent)
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes exactly one folder row, never its descendants
	Delete(ctx context.Context, id, userID string) error

	// DeleteByIDs deletes a set of folder rows in one statement
	DeleteByIDs(ctx context.Context, ids []string, userID string) error

	// ListChildren lists immediate child folders sorted by name ascending
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)

	// GetAllByUser retrieves all folders owned by a user (flat list)
	GetAllByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// GetPath computes the slash-joined path for a folder from its parent chain
	GetPath(ctx context.Context, folderID *string, userID string) (string, error)

	// ExistsWithName reports whether a sibling with the given name exists
	// under parentID, optionally excluding one folder from the check
	ExistsWithName(ctx context.Context, userID string, parentID *string, name string, excludeID string) (bool, error)
}
