package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"pixelbin/internal/config"
	"pixelbin/internal/domain"
	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/repositories"
	"pixelbin/internal/domain/services"
	"pixelbin/internal/formats"
	"pixelbin/internal/storage"
)

type imageService struct {
	imageRepo  repositories.ImageRepository
	folderRepo repositories.FolderRepository
	fileStore  storage.FileStore
	formats    *formats.Registry
	logger     *slog.Logger
}

// NewImageService creates a new image service
func NewImageService(
	imageRepo repositories.ImageRepository,
	folderRepo repositories.FolderRepository,
	fileStore storage.FileStore,
	formatRegistry *formats.Registry,
	logger *slog.Logger,
) services.ImageService {
	return &imageService{
		imageRepo:  imageRepo,
		folderRepo: folderRepo,
		fileStore:  fileStore,
		formats:    formatRegistry,
		logger:     logger,
	}
}

// UploadImage stores the uploaded file under a generated filename and
// inserts the metadata record. The stored file is unlinked again if the
// insert fails, so a rejected upload leaves nothing behind.
func (s *imageService) UploadImage(ctx context.Context, req *services.UploadImageRequest) (*models.Image, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The destination folder must exist and belong to the caller
	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, req.UserID)
	if err != nil {
		return nil, err
	}

	mimeType, ok := s.formats.CanonicalMime(req.MimeType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q (allowed: %s)",
			domain.ErrValidation, req.MimeType, strings.Join(s.formats.AllowedTypes(), ", "))
	}

	filename, path, err := s.fileStore.Save(req.OriginalName, req.Content)
	if err != nil {
		return nil, fmt.Errorf("store image file: %w", err)
	}

	image := &models.Image{
		UserID:       req.UserID,
		FolderID:     folder.ID,
		Name:         req.Name,
		OriginalName: req.OriginalName,
		Filename:     filename,
		Filepath:     path,
		MimeType:     mimeType,
		Size:         req.Size,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if rmErr := s.fileStore.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove stored file after insert failure",
				"path", path,
				"error", rmErr,
			)
		}
		return nil, err
	}

	s.logger.Info("image uploaded",
		"id", image.ID,
		"name", image.Name,
		"user_id", req.UserID,
		"folder_id", folder.ID,
		"size", image.Size,
		"mime_type", image.MimeType,
	)

	return image, nil
}

// GetImage retrieves one image record
func (s *imageService) GetImage(ctx context.Context, id, userID string) (*models.Image, error) {
	return s.imageRepo.GetByID(ctx, id, userID)
}

// ListImages pages through a folder's images, or all of the user's
// images when FolderID is nil, newest first.
func (s *imageService) ListImages(ctx context.Context, req *services.ListImagesRequest) (*models.SearchResults, error) {
	limit, offset := pageToLimitOffset(req.Page, req.PageSize)

	if req.FolderID != nil {
		// The folder must exist and belong to the caller
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.UserID); err != nil {
			return nil, err
		}
	}

	images, total, err := s.imageRepo.ListByFolder(ctx, req.UserID, req.FolderID, limit, offset)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.Image{}
	}

	return &models.SearchResults{
		Results:    images,
		TotalCount: total,
		HasMore:    offset+len(images) < total,
		Offset:     offset,
		Limit:      limit,
	}, nil
}

// SearchImages matches images by case-insensitive substring against the
// display name or original filename. When FolderID is given, the scope
// is that folder's whole subtree.
func (s *imageService) SearchImages(ctx context.Context, req *services.SearchImagesRequest) (*models.SearchResults, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}

	limit, offset := pageToLimitOffset(req.Page, req.PageSize)

	opts := &models.SearchOptions{
		Query:  query,
		UserID: req.UserID,
		Limit:  limit,
		Offset: offset,
	}
	opts.ApplyDefaults()

	if req.FolderID != nil && *req.FolderID != "" {
		// The scope root must exist and belong to the caller
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.UserID); err != nil {
			return nil, err
		}

		scope, err := collectSubtreeIDs(ctx, s.folderRepo, req.UserID, *req.FolderID)
		if err != nil {
			return nil, err
		}
		opts.FolderIDs = scope
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	results, err := s.imageRepo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("image search",
		"user_id", req.UserID,
		"query", query,
		"scoped", req.FolderID != nil,
		"total", results.TotalCount,
	)

	return results, nil
}

// RenameImage changes an image's display name
func (s *imageService) RenameImage(ctx context.Context, id, userID, newName string) (*models.Image, error) {
	if err := validation.Validate(newName,
		validation.Required,
		validation.Length(1, config.MaxImageNameLength),
	); err != nil {
		return nil, fmt.Errorf("%w: image name: %v", domain.ErrValidation, err)
	}

	image, err := s.imageRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	image.Name = newName
	image.UpdatedAt = time.Now()

	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("image renamed", "id", id, "name", newName, "user_id", userID)

	return image, nil
}

// MoveImage moves an image into another folder owned by the same user.
// The move changes the containing folder, never the owner.
func (s *imageService) MoveImage(ctx context.Context, id, userID, folderID string) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("destination folder not found: %w", err)
	}

	image.FolderID = folder.ID
	image.UpdatedAt = time.Now()

	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("image moved",
		"id", id,
		"folder_id", folder.ID,
		"user_id", userID,
	)

	return image, nil
}

// DeleteImage removes the record, then best-effort removes the stored
// file. A failed unlink is logged and swallowed; the record stays gone.
func (s *imageService) DeleteImage(ctx context.Context, id, userID string) error {
	image, err := s.imageRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if err := s.fileStore.Remove(image.Filepath); err != nil {
		s.logger.Warn("failed to remove stored file",
			"path", image.Filepath,
			"error", err,
		)
	}

	s.logger.Info("image deleted", "id", id, "user_id", userID)

	return nil
}

// validateUploadRequest validates an upload request
func (s *imageService) validateUploadRequest(req *services.UploadImageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxImageNameLength),
		),
		validation.Field(&req.OriginalName, validation.Required),
		validation.Field(&req.Size,
			validation.Required,
			validation.Max(int64(config.MaxImageSizeBytes)).Error("image size cannot exceed 10MB"),
		),
		validation.Field(&req.Content, validation.NotNil),
	)
}

// pageToLimitOffset converts 1-based page parameters to limit/offset,
// applying the defaults and the page-size cap.
func pageToLimitOffset(page, pageSize int) (int, int) {
	if page < 1 {
		page = config.DefaultPage
	}
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
