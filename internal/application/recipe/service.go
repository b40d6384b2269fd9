// Package recipe provides the application layer for published recipes
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/cache"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/monitoring"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// slugProbeLimit bounds the numeric suffix search before falling back to
// a timestamp suffix.
const slugProbeLimit = 100

// Service implements the recipe use cases
type Service struct {
	recipeRepo outbound.RecipeRepository
	cache      outbound.CacheRepository
	cacheTTL   time.Duration
	metrics    *monitoring.Metrics
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewService creates a new recipe service
func NewService(
	recipeRepo outbound.RecipeRepository,
	cacheRepo outbound.CacheRepository,
	cacheTTL time.Duration,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		recipeRepo: recipeRepo,
		cache:      cacheRepo,
		cacheTTL:   cacheTTL,
		metrics:    metrics,
		validate:   validator.New(),
		logger:     logger.Named("recipe-service"),
	}
}

// UniqueSlug derives a slug from the title and probes the repository for a
// free variant: the base first, then -1 through -100. After the probe limit
// a timestamp suffix guarantees uniqueness.
func UniqueSlug(ctx context.Context, repo outbound.RecipeRepository, title string) (string, error) {
	base := recipe.Slugify(title)
	if base == "" {
		base = "tarif"
	}

	candidate := base
	for i := 1; i <= slugProbeLimit; i++ {
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", apperrors.NewDatabaseError("check slug", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()), nil
}

// CreateRecipe creates a recipe through the strict entry point: missing
// fields are rejected, never coerced.
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	category := recipe.Category(cmd.Category)
	if !category.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", cmd.Category))
	}

	entity, err := recipe.NewRecipe(
		cmd.Title,
		cmd.Description,
		category,
		cmd.PrepTime,
		cmd.Servings,
		cmd.Ingredients,
		cmd.Steps,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	slug, err := UniqueSlug(ctx, s.recipeRepo, entity.Title())
	if err != nil {
		return nil, err
	}
	if err := entity.AssignSlug(slug); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := entity.SetImages(cmd.Images); err != nil {
		return nil, apperrors.New(apperrors.CodeTooManyImages,
			fmt.Sprintf("En fazla %d görsel eklenebilir.", recipe.MaxImages), "")
	}
	entity.SetAuthorEmail(cmd.AuthorEmail)

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, apperrors.TranslateStoreError(err)
	}

	s.invalidate(ctx)
	s.logger.Info("Recipe created",
		zap.String("id", entity.ID().String()),
		zap.String("slug", entity.Slug()),
	)

	return entityToDTO(entity), nil
}

// UpdateRecipe replaces the editable fields with relaxed coercion. The slug
// is never recomputed, so existing links keep working.
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	entity.UpdateContent(
		cmd.Title,
		cmd.Description,
		recipe.Category(cmd.Category),
		cmd.PrepTime,
		cmd.Servings,
		cmd.Ingredients,
		cmd.Steps,
	)

	if err := entity.SetImages(cmd.Images); err != nil {
		return nil, apperrors.New(apperrors.CodeTooManyImages,
			fmt.Sprintf("En fazla %d görsel eklenebilir.", recipe.MaxImages), "")
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.TranslateStoreError(err)
	}

	s.invalidate(ctx)
	s.logger.Info("Recipe updated", zap.String("id", entity.ID().String()))

	return entityToDTO(entity), nil
}

// DeleteRecipe removes a recipe permanently
func (s *Service) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return apperrors.NewRecipeNotFoundError(id.String())
		}
		return apperrors.NewDatabaseError("delete recipe", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Recipe deleted", zap.String("id", id.String()))
	return nil
}

// GetRecipeByID returns a recipe by ID
func (s *Service) GetRecipeByID(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	return entityToDTO(entity), nil
}

// GetRecipeBySlug returns the public detail view with shop keyword link
// segments. The built view is cached.
func (s *Service) GetRecipeBySlug(ctx context.Context, slug string) (*inbound.RecipeDetailDTO, error) {
	key := cache.SlugKey(slug)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var dto inbound.RecipeDetailDTO
		if err := json.Unmarshal(cached, &dto); err == nil {
			s.metrics.RecordCacheOperation("detail", "hit")
			return &dto, nil
		}
	}
	s.metrics.RecordCacheOperation("detail", "miss")

	entity, err := s.recipeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(slug)
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	dto := entityToDetailDTO(entity)
	if data, err := json.Marshal(dto); err == nil {
		_ = s.cache.Set(ctx, key, data, s.cacheTTL)
	}

	return dto, nil
}

// ListRecipes returns the public catalog, newest first
func (s *Service) ListRecipes(ctx context.Context, query inbound.ListQuery) ([]inbound.RecipeDTO, error) {
	key := cache.ListKey(query.Category, query.Search, query.Limit, query.Offset)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var dtos []inbound.RecipeDTO
		if err := json.Unmarshal(cached, &dtos); err == nil {
			s.metrics.RecordCacheOperation("list", "hit")
			return dtos, nil
		}
	}
	s.metrics.RecordCacheOperation("list", "miss")

	entities, err := s.recipeRepo.List(ctx, outbound.ListFilter{
		Category: query.Category,
		Search:   query.Search,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]inbound.RecipeDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = *entityToDTO(entity)
	}

	if data, err := json.Marshal(dtos); err == nil {
		_ = s.cache.Set(ctx, key, data, s.cacheTTL)
	}

	return dtos, nil
}

// RelatedRecipes returns recipes sharing the category, excluding the
// recipe itself
func (s *Service) RelatedRecipes(ctx context.Context, slug string, limit int) ([]inbound.RecipeDTO, error) {
	if limit <= 0 {
		limit = 3
	}

	entity, err := s.recipeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(slug)
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	related, err := s.recipeRepo.FindRelated(ctx, entity.Category(), entity.ID(), limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find related recipes", err)
	}

	dtos := make([]inbound.RecipeDTO, len(related))
	for i, rel := range related {
		dtos[i] = *entityToDTO(rel)
	}
	return dtos, nil
}

// ScaledIngredients adjusts the ingredient lines from the stored servings
// to the requested servings
func (s *Service) ScaledIngredients(ctx context.Context, slug string, servings int) ([]string, error) {
	if servings < 1 {
		return nil, apperrors.NewValidationError("servings must be at least 1")
	}

	entity, err := s.recipeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(slug)
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	factor := float64(servings) / float64(entity.Servings())
	return recipe.ScaleIngredients(entity.Ingredients(), factor), nil
}

// ListSlugs returns every published slug for the sitemap
func (s *Service) ListSlugs(ctx context.Context) ([]string, error) {
	slugs, err := s.recipeRepo.ListSlugs(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list slugs", err)
	}
	return slugs, nil
}

// invalidate wipes the whole cache namespace after a write. A write can
// move a recipe between listings, so everything goes.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, cache.KeyPrefix); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}

func entityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	return &inbound.RecipeDTO{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Category:    string(entity.Category()),
		PrepTime:    entity.PrepTime(),
		Servings:    entity.Servings(),
		Ingredients: entity.Ingredients(),
		Steps:       entity.Steps(),
		Images:      entity.Images(),
		ImageURL:    entity.CoverImage(),
		Slug:        entity.Slug(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func entityToDetailDTO(entity *recipe.Recipe) *inbound.RecipeDetailDTO {
	segments := make([][]recipe.Segment, len(entity.Ingredients()))
	for i, line := range entity.Ingredients() {
		segments[i] = recipe.LinkShopKeywords(line)
	}

	return &inbound.RecipeDetailDTO{
		RecipeDTO:           *entityToDTO(entity),
		DescriptionSegments: recipe.LinkShopKeywords(entity.Description()),
		IngredientSegments:  segments,
	}
}

// EntityToDTO converts a domain recipe for callers outside the package,
// such as the draft publish pipeline.
func EntityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	return entityToDTO(entity)
}
