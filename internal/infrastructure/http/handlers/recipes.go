package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// RecipeHandlers serves the public catalog endpoints
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeHandlers creates the public recipe handlers
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		logger:        logger,
	}
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// GetRecipe handles GET /api/v1/recipes/{slug}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	detail, err := h.recipeService.GetRecipeBySlug(r.Context(), slug)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: detail})
}

// GetRelatedRecipes handles GET /api/v1/recipes/{slug}/related
func (h *RecipeHandlers) GetRelatedRecipes(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := intQuery(r, "limit", 0)

	related, err := h.recipeService.RelatedRecipes(r.Context(), slug, limit)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: related})
}

// GetScaledIngredients handles GET /api/v1/recipes/{slug}/ingredients
func (h *RecipeHandlers) GetScaledIngredients(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	servings, err := strconv.Atoi(r.URL.Query().Get("servings"))
	if err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("servings must be a number"))
		return
	}

	ingredients, scaleErr := h.recipeService.ScaledIngredients(r.Context(), slug, servings)
	if scaleErr != nil {
		writeError(h.logger, w, scaleErr)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"servings":    servings,
			"ingredients": ingredients,
		},
	})
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
