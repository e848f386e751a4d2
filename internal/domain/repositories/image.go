package repositories

import (
	"context"

	"pixelbin/internal/domain/models"
)

// ImageRepository defines data access operations for image metadata.
// All queries are owner-scoped.
type ImageRepository interface {
	// Create creates a new image record
	Create(ctx context.Context, image *models.Image) error

	// GetByID retrieves an image by ID
	GetByID(ctx context.Context, id, userID string) (*models.Image, error)

	// Update updates an image's display name and/or containing folder
	Update(ctx context.Context, image *models.Image) error

	// Delete removes one image record
	Delete(ctx context.Context, id, userID string) error

	// DeleteByFolderIDs removes every image whose folder is in the given
	// set and returns the filepaths of the removed rows so the caller can
	// clean up the stored files
	DeleteByFolderIDs(ctx context.Context, folderIDs []string, userID string) ([]string, error)

	// ListByFolder lists images newest-first with a total count.
	// folderID == nil lists across all of the user's folders.
	ListByFolder(ctx context.Context, userID string, folderID *string, limit, offset int) ([]models.Image, int, error)

	// CountByFolderIDs counts images whose folder is in the given set
	CountByFolderIDs(ctx context.Context, folderIDs []string, userID string) (int, error)

	// Search matches images by case-insensitive substring, newest-first
	Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error)
}
