package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"pixelbin/internal/domain"
	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/repositories"
)

// fakeFolderRepo is an in-memory FolderRepository for service tests.
type fakeFolderRepo struct {
	folders map[string]*models.Folder
	nextID  int

	getAllErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

// add seeds a folder directly, bypassing validation. Returns the id.
func (r *fakeFolderRepo) add(id, userID, name string, parentID *string) string {
	r.folders[id] = &models.Folder{
		ID:       id,
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}
	return id
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	for _, f := range r.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name && sameParent(f.ParentID, folder.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   f.ID,
			}
		}
	}
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	f, ok := r.folders[folder.ID]
	if !ok || f.UserID != folder.UserID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.GetByID(ctx, id, userID); err != nil {
		return err
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) DeleteByIDs(ctx context.Context, ids []string, userID string) error {
	for _, id := range ids {
		if f, ok := r.folders[id]; ok && f.UserID == userID {
			delete(r.folders, id)
		}
	}
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID && sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) GetAllByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	if r.getAllErr != nil {
		return nil, r.getAllErr
	}
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) GetPath(ctx context.Context, folderID *string, userID string) (string, error) {
	if folderID == nil {
		return "", nil
	}
	var segments []string
	currentID := *folderID
	seen := make(map[string]bool)
	for {
		if seen[currentID] {
			return "", fmt.Errorf("cyclic parent chain at folder %s", currentID)
		}
		seen[currentID] = true

		f, ok := r.folders[currentID]
		if !ok || f.UserID != userID {
			return "", fmt.Errorf("folder %s: %w", currentID, domain.ErrNotFound)
		}
		segments = append([]string{f.Name}, segments...)
		if f.ParentID == nil {
			return strings.Join(segments, "/"), nil
		}
		currentID = *f.ParentID
	}
}

func (r *fakeFolderRepo) ExistsWithName(ctx context.Context, userID string, parentID *string, name string, excludeID string) (bool, error) {
	for _, f := range r.folders {
		if f.UserID == userID && f.Name == name && sameParent(f.ParentID, parentID) && f.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeImageRepo is an in-memory ImageRepository for service tests.
type fakeImageRepo struct {
	images map[string]*models.Image
	nextID int

	createErr error
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[string]*models.Image)}
}

func (r *fakeImageRepo) add(id, userID, folderID, name, originalName, path string) string {
	r.images[id] = &models.Image{
		ID:           id,
		UserID:       userID,
		FolderID:     folderID,
		Name:         name,
		OriginalName: originalName,
		Filepath:     path,
	}
	return id
}

func (r *fakeImageRepo) Create(ctx context.Context, image *models.Image) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	image.ID = fmt.Sprintf("image-%d", r.nextID)
	cp := *image
	r.images[image.ID] = &cp
	return nil
}

func (r *fakeImageRepo) GetByID(ctx context.Context, id, userID string) (*models.Image, error) {
	img, ok := r.images[id]
	if !ok || img.UserID != userID {
		return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}
	cp := *img
	return &cp, nil
}

func (r *fakeImageRepo) Update(ctx context.Context, image *models.Image) error {
	img, ok := r.images[image.ID]
	if !ok || img.UserID != image.UserID {
		return fmt.Errorf("image %s: %w", image.ID, domain.ErrNotFound)
	}
	cp := *image
	r.images[image.ID] = &cp
	return nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.GetByID(ctx, id, userID); err != nil {
		return err
	}
	delete(r.images, id)
	return nil
}

func (r *fakeImageRepo) DeleteByFolderIDs(ctx context.Context, folderIDs []string, userID string) ([]string, error) {
	inScope := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inScope[id] = true
	}
	var filepaths []string
	for id, img := range r.images {
		if img.UserID == userID && inScope[img.FolderID] {
			filepaths = append(filepaths, img.Filepath)
			delete(r.images, id)
		}
	}
	sort.Strings(filepaths)
	return filepaths, nil
}

func (r *fakeImageRepo) ListByFolder(ctx context.Context, userID string, folderID *string, limit, offset int) ([]models.Image, int, error) {
	var all []models.Image
	for _, img := range r.images {
		if img.UserID != userID {
			continue
		}
		if folderID != nil && img.FolderID != *folderID {
			continue
		}
		all = append(all, *img)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= total {
		return []models.Image{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeImageRepo) CountByFolderIDs(ctx context.Context, folderIDs []string, userID string) (int, error) {
	inScope := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inScope[id] = true
	}
	count := 0
	for _, img := range r.images {
		if img.UserID == userID && inScope[img.FolderID] {
			count++
		}
	}
	return count, nil
}

func (r *fakeImageRepo) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error) {
	var inScope map[string]bool
	if opts.FolderIDs != nil {
		inScope = make(map[string]bool, len(opts.FolderIDs))
		for _, id := range opts.FolderIDs {
			inScope[id] = true
		}
	}

	query := strings.ToLower(opts.Query)
	var matches []models.Image
	for _, img := range r.images {
		if img.UserID != opts.UserID {
			continue
		}
		if inScope != nil && !inScope[img.FolderID] {
			continue
		}
		if matchesField(img, opts.Fields, query) {
			matches = append(matches, *img)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := len(matches)
	if opts.Offset < len(matches) {
		end := opts.Offset + opts.Limit
		if end > len(matches) {
			end = len(matches)
		}
		matches = matches[opts.Offset:end]
	} else {
		matches = []models.Image{}
	}

	return models.NewSearchResults(matches, total, opts), nil
}

func matchesField(img *models.Image, fields []models.SearchField, query string) bool {
	for _, field := range fields {
		switch field {
		case models.SearchFieldName:
			if strings.Contains(strings.ToLower(img.Name), query) {
				return true
			}
		case models.SearchFieldOriginalName:
			if strings.Contains(strings.ToLower(img.OriginalName), query) {
				return true
			}
		}
	}
	return false
}

// fakeFileStore records saves and removals without touching the disk.
type fakeFileStore struct {
	nextID  int
	saved   []string
	removed []string

	saveErr   error
	removeErr error
}

func (s *fakeFileStore) Save(originalName string, content io.Reader) (string, string, error) {
	if s.saveErr != nil {
		return "", "", s.saveErr
	}
	s.nextID++
	filename := fmt.Sprintf("stored-%d", s.nextID)
	path := "/uploads/" + filename
	s.saved = append(s.saved, path)
	return filename, path, nil
}

func (s *fakeFileStore) Remove(path string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, path)
	return nil
}

// fakeTxManager runs the function directly with no real transaction.
type fakeTxManager struct {
	execErr error
	calls   int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	if m.execErr != nil {
		return m.execErr
	}
	return fn(ctx)
}
