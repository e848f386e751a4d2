package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"pixelbin/internal/domain"
	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/repositories"
)

const imageColumns = "id, user_id, folder_id, name, original_name, filename, filepath, mime_type, size_bytes, created_at, updated_at"

// PostgresImageRepository implements the ImageRepository interface
type PostgresImageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewImageRepository creates a new image repository
func NewImageRepository(config *RepositoryConfig) repositories.ImageRepository {
	return &PostgresImageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new image record
func (r *PostgresImageRepository) Create(ctx context.Context, image *models.Image) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, name, original_name, filename, filepath, mime_type, size_bytes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		image.UserID,
		image.FolderID,
		image.Name,
		image.OriginalName,
		image.Filename,
		image.Filepath,
		image.MimeType,
		image.Size,
		image.CreatedAt,
		image.UpdatedAt,
	).Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			// The generated filename collided, which should never happen
			return &domain.ConflictError{
				Message:      fmt.Sprintf("image file %q already exists", image.Filename),
				ResourceType: "image",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", image.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

// GetByID retrieves an image by ID
func (r *PostgresImageRepository) GetByID(ctx context.Context, id, userID string) (*models.Image, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, imageColumns, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	image, err := scanImage(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return image, nil
}

// Update updates an image's display name and containing folder
func (r *PostgresImageRepository) Update(ctx context.Context, image *models.Image) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, folder_id = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		image.Name,
		image.FolderID,
		image.UpdatedAt,
		image.ID,
		image.UserID,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", image.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("update image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", image.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes one image record
func (r *PostgresImageRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByFolderIDs removes every image in the given folder set and returns
// the filepaths of the removed rows for file cleanup by the caller.
func (r *PostgresImageRepository) DeleteByFolderIDs(ctx context.Context, folderIDs []string, userID string) ([]string, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = ANY($1) AND user_id = $2
		RETURNING filepath
	`, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("delete images by folder: %w", err)
	}
	defer rows.Close()

	var filepaths []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan deleted image path: %w", err)
		}
		filepaths = append(filepaths, fp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted images: %w", err)
	}

	return filepaths, nil
}

// ListByFolder lists images newest-first with a total count.
// folderID == nil lists across all of the user's folders.
func (r *PostgresImageRepository) ListByFolder(ctx context.Context, userID string, folderID *string, limit, offset int) ([]models.Image, int, error) {
	whereClause := "WHERE user_id = $1"
	args := []interface{}{userID}

	if folderID != nil {
		whereClause += " AND folder_id = $2"
		args = append(args, *folderID)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Images, whereClause)

	executor := GetExecutor(ctx, r.pool)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count images: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, imageColumns, r.tables.Images, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := executor.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// CountByFolderIDs counts images whose folder is in the given set
func (r *PostgresImageRepository) CountByFolderIDs(ctx context.Context, folderIDs []string, userID string) (int, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE folder_id = ANY($1) AND user_id = $2
	`, r.tables.Images)

	executor := GetExecutor(ctx, r.pool)
	var count int
	if err := executor.QueryRow(ctx, query, folderIDs, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count images by folder: %w", err)
	}

	return count, nil
}

// Search matches images by case-insensitive substring against the selected
// fields, newest-first, optionally restricted to a folder-id set.
func (r *PostgresImageRepository) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error) {
	// Escape LIKE metacharacters so user input matches literally
	pattern := "%" + escapeLikePattern(opts.Query) + "%"

	var fieldConditions []string
	for _, field := range opts.Fields {
		switch field {
		case models.SearchFieldName:
			fieldConditions = append(fieldConditions, `name ILIKE $2 ESCAPE '\'`)
		case models.SearchFieldOriginalName:
			fieldConditions = append(fieldConditions, `original_name ILIKE $2 ESCAPE '\'`)
		}
	}

	whereClause := fmt.Sprintf("WHERE user_id = $1 AND (%s)", strings.Join(fieldConditions, " OR "))
	args := []interface{}{opts.UserID, pattern}
	paramIndex := 3

	if opts.FolderIDs != nil {
		whereClause += fmt.Sprintf(" AND folder_id = ANY($%d)", paramIndex)
		args = append(args, opts.FolderIDs)
		paramIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Images, whereClause)

	executor := GetExecutor(ctx, r.pool)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count search matches: %w", err)
	}

	searchQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, imageColumns, r.tables.Images, whereClause, paramIndex, paramIndex+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := executor.Query(ctx, searchQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search images: %w", err)
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.Image{}
	}

	return models.NewSearchResults(images, total, opts), nil
}

// escapeLikePattern escapes %, _ and \ so they match literally
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func scanImage(row pgx.Row) (*models.Image, error) {
	var img models.Image
	err := row.Scan(
		&img.ID,
		&img.UserID,
		&img.FolderID,
		&img.Name,
		&img.OriginalName,
		&img.Filename,
		&img.Filepath,
		&img.MimeType,
		&img.Size,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func scanImages(rows pgx.Rows) ([]models.Image, error) {
	var images []models.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return images, nil
}
