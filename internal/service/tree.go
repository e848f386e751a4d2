package service

import (
	"context"
	"log/slog"

	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/repositories"
	"pixelbin/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetFolderTree builds the user's nested folder hierarchy from a single
// flat query. The repository returns folders name-sorted (creation order
// breaking ties), so appending children in input order keeps every level
// of the tree sorted without a per-level query or an explicit sort.
func (s *treeService) GetFolderTree(ctx context.Context, userID string) ([]*models.FolderTreeNode, error) {
	allFolders, err := s.folderRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	nodeByID := make(map[string]*models.FolderTreeNode, len(allFolders))
	for _, folder := range allFolders {
		nodeByID[folder.ID] = &models.FolderTreeNode{
			ID:         folder.ID,
			Name:       folder.Name,
			ParentID:   folder.ParentID,
			CreatedAt:  folder.CreatedAt,
			Subfolders: []*models.FolderTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents.
	// Nodes whose parent id does not resolve are dropped rather than
	// failing the whole build.
	roots := make([]*models.FolderTreeNode, 0)
	for _, folder := range allFolders {
		node := nodeByID[folder.ID]
		if folder.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, exists := nodeByID[*folder.ParentID]; exists {
			parent.Subfolders = append(parent.Subfolders, node)
		} else {
			s.logger.Warn("folder has dangling parent, skipping",
				"folder_id", folder.ID,
				"parent_id", *folder.ParentID,
			)
		}
	}

	// Third pass: derive each node's path from its parent chain
	for _, root := range roots {
		annotatePaths(root, nil)
	}

	s.logger.Info("folder tree built",
		"user_id", userID,
		"folder_count", len(allFolders),
	)

	return roots, nil
}

// annotatePaths fills in Path depth-first: a root's path is its name, a
// child's path is the parent path joined with "/".
func annotatePaths(node *models.FolderTreeNode, parentPath *string) {
	node.Path = ResolvePath(node.Name, parentPath)
	for _, child := range node.Subfolders {
		annotatePaths(child, &node.Path)
	}
}
