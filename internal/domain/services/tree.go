package services

import (
	"context"

	"pixelbin/internal/domain/models"
)

// TreeService builds the nested folder tree for a user
type TreeService interface {
	// GetFolderTree returns the user's full folder hierarchy, nested,
	// with every level sorted by name ascending
	GetFolderTree(ctx context.Context, userID string) ([]*models.FolderTreeNode, error)
}
