package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/http/middleware"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/monitoring"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// AdminHandlers serves the authenticated panel endpoints: recipe CRUD, the
// draft wizard and image uploads.
type AdminHandlers struct {
	recipeService inbound.RecipeService
	draftService  inbound.DraftService
	uploadService inbound.UploadService
	metrics       *monitoring.Metrics
	maxUploadSize int64
	logger        *zap.Logger
}

// NewAdminHandlers creates the admin handlers
func NewAdminHandlers(
	recipeService inbound.RecipeService,
	draftService inbound.DraftService,
	uploadService inbound.UploadService,
	metrics *monitoring.Metrics,
	maxUploadSize int64,
	logger *zap.Logger,
) *AdminHandlers {
	return &AdminHandlers{
		recipeService: recipeService,
		draftService:  draftService,
		uploadService: uploadService,
		metrics:       metrics,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// ListRecipes handles GET /api/v1/admin/recipes. The panel sees the same
// catalog as the public listing, including pagination.
func (h *AdminHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.ListQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    intQuery(r, "limit", 0),
		Offset:   intQuery(r, "offset", 0),
	}

	recipes, err := h.recipeService.ListRecipes(r.Context(), query)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipes)
}

// CreateRecipe handles POST /api/v1/admin/recipes
func (h *AdminHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateRecipeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}

	created, err := h.recipeService.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	h.metrics.RecordRecipePublished()
	h.logger.Info("Recipe published",
		zap.String("recipe_id", created.ID.String()),
		zap.String("published_by", publisherName(r)),
	)
	writeJSON(h.logger, w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    created,
		Message: "Tarif yayınlandı",
	})
}

// publisherName resolves the acting admin from the token claims for the
// publish audit log.
func publisherName(r *http.Request) string {
	if name, ok := middleware.UsernameFromContext(r.Context()); ok {
		return name
	}
	return "unknown"
}

// GetRecipe handles GET /api/v1/admin/recipes/{id}
func (h *AdminHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	found, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: found})
}

// UpdateRecipe handles PUT /api/v1/admin/recipes/{id}
func (h *AdminHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd inbound.UpdateRecipeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}
	cmd.RecipeID = id

	updated, err := h.recipeService.UpdateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    updated,
		Message: "Tarif güncellendi",
	})
}

// DeleteRecipe handles DELETE /api/v1/admin/recipes/{id}
func (h *AdminHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Tarif silindi",
	})
}

// SaveDraft handles POST /api/v1/admin/drafts
func (h *AdminHandlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SaveDraftCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}

	saved, err := h.draftService.SaveDraft(r.Context(), cmd)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: saved})
}

// ListDrafts handles GET /api/v1/admin/drafts
func (h *AdminHandlers) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.draftService.ListDrafts(r.Context())
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: drafts})
}

// GetDraft handles GET /api/v1/admin/drafts/{id}
func (h *AdminHandlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	found, err := h.draftService.GetDraft(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: found})
}

// DeleteDraft handles DELETE /api/v1/admin/drafts/{id}
func (h *AdminHandlers) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraft(r.Context(), id); err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Taslak silindi",
	})
}

// PublishDraft handles POST /api/v1/admin/drafts/{id}/publish
func (h *AdminHandlers) PublishDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		SkipFailedImages bool `json:"skip_failed_images"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
			return
		}
	}

	published, err := h.draftService.PublishDraft(r.Context(), inbound.PublishDraftCommand{
		DraftID:          id,
		SkipFailedImages: body.SkipFailedImages,
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	h.metrics.RecordRecipePublished()
	h.logger.Info("Draft published",
		zap.String("draft_id", id.String()),
		zap.String("recipe_id", published.ID.String()),
		zap.String("published_by", publisherName(r)),
	)
	writeJSON(h.logger, w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    published,
		Message: "Tarif yayınlandı",
	})
}

// UploadImage handles POST /api/v1/admin/uploads. The file arrives as
// multipart form data under the "file" field; "direct=true" marks uploads
// that skipped client-side downsizing.
func (h *AdminHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(h.logger, w, apperrors.NewImageTooLargeError("", int(h.maxUploadSize>>20)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Dosya bulunamadı"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Dosya okunamadı"))
		return
	}

	result, err := h.uploadService.UploadImage(r.Context(), inbound.UploadImageCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Direct:      r.FormValue("direct") == "true",
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	h.metrics.RecordImageUploaded()
	writeJSON(h.logger, w, http.StatusCreated, APIResponse{Success: true, Data: result})
}

func (h *AdminHandlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz kimlik"))
		return uuid.Nil, false
	}
	return id, true
}
