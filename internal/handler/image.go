package handler

import (
	"log/slog"
	"net/http"

	"pixelbin/internal/config"
	"pixelbin/internal/domain/models"
	"pixelbin/internal/domain/services"
	"pixelbin/internal/httputil"
)

// ImageHandler handles image HTTP requests
type ImageHandler struct {
	imageService services.ImageService
	logger       *slog.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageService services.ImageService, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		logger:       logger,
	}
}

// imageListResponse is the common paged list/search body
type imageListResponse struct {
	Images     []models.ImageResponse `json:"images"`
	Query      string                 `json:"query,omitempty"`
	Pagination httputil.PageMeta      `json:"pagination"`
}

func newImageListResponse(results *models.SearchResults, page int, query string) imageListResponse {
	images := make([]models.ImageResponse, 0, len(results.Results))
	for _, img := range results.Results {
		images = append(images, models.NewImageResponse(img))
	}
	return imageListResponse{
		Images:     images,
		Query:      query,
		Pagination: httputil.NewPageMeta(page, results.Limit, results.TotalCount),
	}
}

// UploadImage uploads an image file into a folder
// POST /api/images (multipart form: image, name, folder_id)
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	// MaxBytesReader enforces the transport cap; the ParseMultipartForm
	// argument only sets the in-memory buffering threshold. The margin
	// above the per-image limit leaves room for the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImageSizeBytes+1<<20)
	if err := r.ParseMultipartForm(config.MaxImageSizeBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer func() { _ = file.Close() }()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	image, err := h.imageService.UploadImage(r.Context(), &services.UploadImageRequest{
		UserID:       userID,
		FolderID:     r.FormValue("folder_id"),
		Name:         name,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, models.NewImageResponse(*image))
}

// ListImages lists images in a folder (?folder_id) or across all folders
// GET /api/images
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	p := httputil.ParsePagination(r, config.DefaultPage, config.DefaultPageSize)

	var folderID *string
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		folderID = &raw
	}

	results, err := h.imageService.ListImages(r.Context(), &services.ListImagesRequest{
		UserID:   userID,
		FolderID: folderID,
		Page:     p.Page,
		PageSize: p.Limit,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newImageListResponse(results, p.Page, ""))
}

// SearchImages searches images by name or original filename, optionally
// scoped to a folder subtree
// GET /api/images/search?query=...&folder_id=...
func (h *ImageHandler) SearchImages(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	p := httputil.ParsePagination(r, config.DefaultPage, config.DefaultPageSize)

	query := r.URL.Query().Get("query")

	var folderID *string
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		folderID = &raw
	}

	results, err := h.imageService.SearchImages(r.Context(), &services.SearchImagesRequest{
		UserID:   userID,
		Query:    query,
		FolderID: folderID,
		Page:     p.Page,
		PageSize: p.Limit,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newImageListResponse(results, p.Page, query))
}

// GetImage retrieves a single image record
// GET /api/images/{id}
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "image ID is required")
		return
	}

	image, err := h.imageService.GetImage(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.NewImageResponse(*image))
}

// RenameImage updates an image's display name
// PATCH /api/images/{id}
func (h *ImageHandler) RenameImage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "image ID is required")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	image, err := h.imageService.RenameImage(r.Context(), id, userID, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.NewImageResponse(*image))
}

// MoveImage moves an image to a different folder
// POST /api/images/{id}/move
func (h *ImageHandler) MoveImage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "image ID is required")
		return
	}

	var req struct {
		FolderID string `json:"folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	image, err := h.imageService.MoveImage(r.Context(), id, userID, req.FolderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.NewImageResponse(*image))
}

// DeleteImage deletes an image record and its stored file
// DELETE /api/images/{id}
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "image ID is required")
		return
	}

	if err := h.imageService.DeleteImage(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck reports service liveness
// GET /health
func (h *ImageHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
