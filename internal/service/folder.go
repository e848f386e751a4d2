package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"pixelbin/internal/config"
	"pixelbin/internal/domain"
	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/repositories"
	"pixelbin/internal/domain/services"
	"pixelbin/internal/storage"
)

// folderNamePattern rejects the characters that are unsafe in display
// paths and on common filesystems.
var folderNamePattern = regexp.MustCompile(`^[^<>:"/\\|?*]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	imageRepo  repositories.ImageRepository
	fileStore  storage.FileStore
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	imageRepo repositories.ImageRepository,
	fileStore storage.FileStore,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		imageRepo:  imageRepo,
		fileStore:  fileStore,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	// If a parent is specified, it must exist and belong to the caller
	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
		s.logger.Debug("parent folder found",
			"parent_id", parent.ID,
			"parent_name", parent.Name,
		)
	}

	folder := &models.Folder{
		UserID:    req.UserID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.annotatePath(ctx, folder)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", req.UserID,
		"parent_id", req.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its computed path
func (s *folderService) GetFolder(ctx context.Context, id, userID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.annotatePath(ctx, folder)

	return folder, nil
}

// UpdateFolder updates a folder (rename and/or move)
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}

	if req.ParentID != nil {
		if *req.ParentID != "" {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.UserID)
			if err != nil {
				return nil, fmt.Errorf("parent folder not found: %w", err)
			}

			// Reject moves that would make the folder its own ancestor
			if err := s.validateNoCircularReference(ctx, id, *req.ParentID, req.UserID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
			s.logger.Debug("moving folder to new parent",
				"folder_id", id,
				"new_parent_id", parent.ID,
			)
		} else {
			// Move to root
			folder.ParentID = nil
			s.logger.Debug("moving folder to root", "folder_id", id)
		}
	}

	// Sibling uniqueness in the destination, excluding the folder itself
	// so renaming a folder to its current name is a no-op, not a conflict
	taken, err := s.folderRepo.ExistsWithName(ctx, req.UserID, folder.ParentID, folder.Name, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
			ResourceType: "folder",
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.annotatePath(ctx, folder)

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder deletes a folder, every descendant folder, and all images
// they contain. Metadata removal runs in one transaction; stored files
// are cleaned up best-effort after commit.
func (s *folderService) DeleteFolder(ctx context.Context, id, userID string) error {
	folder, err := s.folderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	subtreeIDs, err := collectSubtreeIDs(ctx, s.folderRepo, userID, id)
	if err != nil {
		return err
	}

	var orphanedFiles []string
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		filepaths, err := s.imageRepo.DeleteByFolderIDs(txCtx, subtreeIDs, userID)
		if err != nil {
			return err
		}
		orphanedFiles = filepaths

		return s.folderRepo.DeleteByIDs(txCtx, subtreeIDs, userID)
	})
	if err != nil {
		return err
	}

	// File cleanup never fails the operation; the rows are already gone
	for _, path := range orphanedFiles {
		if err := s.fileStore.Remove(path); err != nil {
			s.logger.Warn("failed to remove stored file",
				"path", path,
				"error", err,
			)
		}
	}

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"user_id", userID,
		"folder_count", len(subtreeIDs),
		"image_count", len(orphanedFiles),
	)

	return nil
}

// ListChildren lists child folders and images at the given level
func (s *folderService) ListChildren(ctx context.Context, folderID *string, userID string) (*models.FolderContents, error) {
	var folder *models.Folder
	var err error

	if folderID != nil && *folderID != "" {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, userID)
		if err != nil {
			return nil, err
		}
		s.annotatePath(ctx, folder)
	} else {
		folderID = nil
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}

	var images []models.Image
	if folderID != nil {
		images, _, err = s.imageRepo.ListByFolder(ctx, userID, folderID, config.MaxPageSize, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list images: %w", err)
		}
	}

	if childFolders == nil {
		childFolders = []models.Folder{}
	}
	if images == nil {
		images = []models.Image{}
	}

	return &models.FolderContents{
		Folder:  folder,
		Folders: childFolders,
		Images:  images,
	}, nil
}

// annotatePath fills in the computed display path, degrading to the bare
// folder name when the parent chain cannot be resolved.
func (s *folderService) annotatePath(ctx context.Context, folder *models.Folder) {
	path, err := s.folderRepo.GetPath(ctx, &folder.ID, folder.UserID)
	if err != nil || path == "" {
		if err != nil {
			s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		}
		folder.Path = folder.Name
		return
	}
	folder.Path = path
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error(`folder name cannot contain < > : " / \ | ? *`),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && req.ParentID == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.UserID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(folderNamePattern).Error(`folder name cannot contain < > : " / \ | ? *`),
			),
		)
	}

	return validation.ValidateStruct(req, rules...)
}

// validateNoCircularReference ensures moving a folder won't create circular references
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID, userID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder into itself", domain.ErrValidation)
	}

	// Walk from the proposed parent up to the root; if the folder being
	// moved appears in that chain, the move would create a cycle. The
	// seen set terminates the walk even over a corrupted cyclic chain.
	currentID := newParentID
	seen := make(map[string]bool)
	for {
		if seen[currentID] {
			s.logger.Warn("cyclic parent chain detected during move validation",
				"folder_id", currentID,
				"user_id", userID,
			)
			return nil
		}
		seen[currentID] = true

		parent, err := s.folderRepo.GetByID(ctx, currentID, userID)
		if err != nil {
			return err
		}

		if parent.ParentID == nil {
			// Reached root, no circular reference
			return nil
		}

		if *parent.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder into one of its own descendants", domain.ErrValidation)
		}

		currentID = *parent.ParentID
	}
}
