// Package draft provides the autosave and publish use cases of the
// authoring wizard.
package draft

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/application/recipe"
	draftdomain "github.com/denizsemerci/egeli-betty/internal/domain/draft"
	recipedomain "github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/cache"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/imaging"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// Service implements the draft use cases
type Service struct {
	draftRepo  outbound.DraftRepository
	recipeRepo outbound.RecipeRepository
	cacheRepo  outbound.CacheRepository
	storage    outbound.FileStorage
	processor  *imaging.Processor
	logger     *zap.Logger
}

// NewService creates a new draft service
func NewService(
	draftRepo outbound.DraftRepository,
	recipeRepo outbound.RecipeRepository,
	cacheRepo outbound.CacheRepository,
	storage outbound.FileStorage,
	processor *imaging.Processor,
	logger *zap.Logger,
) inbound.DraftService {
	return &Service{
		draftRepo:  draftRepo,
		recipeRepo: recipeRepo,
		cacheRepo:  cacheRepo,
		storage:    storage,
		processor:  processor,
		logger:     logger.Named("draft-service"),
	}
}

// SaveDraft upserts one autosave snapshot. The first save of a session
// allocates the draft id; later saves overwrite the same row.
func (s *Service) SaveDraft(ctx context.Context, cmd inbound.SaveDraftCommand) (*inbound.DraftDTO, error) {
	snap := draftdomain.Snapshot{
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		PrepTime:    cmd.PrepTime,
		Servings:    cmd.Servings,
		Ingredients: cmd.Ingredients,
		Steps:       cmd.Steps,
		Images:      cmd.Images,
		CurrentStep: cmd.CurrentStep,
		AuthorEmail: cmd.AuthorEmail,
	}

	var entity *draftdomain.Draft
	if cmd.DraftID == nil {
		created, err := draftdomain.New(snap)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		entity = created
	} else {
		found, err := s.draftRepo.FindByID(ctx, *cmd.DraftID)
		if err != nil {
			if errors.Is(err, draftdomain.ErrDraftNotFound) {
				return nil, apperrors.NewDraftNotFoundError(cmd.DraftID.String())
			}
			return nil, apperrors.NewDatabaseError("find draft", err)
		}
		if err := found.Apply(snap); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		entity = found
	}

	if err := s.draftRepo.Save(ctx, entity); err != nil {
		return nil, apperrors.NewDatabaseError("save draft", err)
	}

	return entityToDTO(entity), nil
}

// GetDraft returns a draft by ID
func (s *Service) GetDraft(ctx context.Context, id uuid.UUID) (*inbound.DraftDTO, error) {
	entity, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, draftdomain.ErrDraftNotFound) {
			return nil, apperrors.NewDraftNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find draft", err)
	}
	return entityToDTO(entity), nil
}

// ListDrafts returns all drafts, most recently edited first
func (s *Service) ListDrafts(ctx context.Context) ([]inbound.DraftDTO, error) {
	entities, err := s.draftRepo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list drafts", err)
	}

	dtos := make([]inbound.DraftDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = *entityToDTO(entity)
	}
	return dtos, nil
}

// DeleteDraft discards a draft without publishing
func (s *Service) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if err := s.draftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, draftdomain.ErrDraftNotFound) {
			return apperrors.NewDraftNotFoundError(id.String())
		}
		return apperrors.NewDatabaseError("delete draft", err)
	}
	return nil
}

// PublishDraft turns a draft into a published recipe. Pending inline images
// are uploaded first, empty fields are coerced to placeholders, and the
// draft row survives until the recipe write has succeeded.
func (s *Service) PublishDraft(ctx context.Context, cmd inbound.PublishDraftCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.draftRepo.FindByID(ctx, cmd.DraftID)
	if err != nil {
		if errors.Is(err, draftdomain.ErrDraftNotFound) {
			return nil, apperrors.NewDraftNotFoundError(cmd.DraftID.String())
		}
		return nil, apperrors.NewDatabaseError("find draft", err)
	}

	images, err := s.resolveImages(ctx, entity.Images(), cmd.SkipFailedImages)
	if err != nil {
		return nil, err
	}

	published := recipedomain.NewRecipeWithFallbacks(
		entity.Title(),
		entity.Description(),
		recipedomain.Category(entity.Category()),
		entity.PrepTime(),
		entity.Servings(),
		entity.Ingredients(),
		entity.Steps(),
	)

	slug, err := recipe.UniqueSlug(ctx, s.recipeRepo, published.Title())
	if err != nil {
		return nil, err
	}
	if err := published.AssignSlug(slug); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := published.SetImages(images); err != nil {
		return nil, apperrors.New(apperrors.CodeTooManyImages,
			fmt.Sprintf("En fazla %d görsel eklenebilir.", recipedomain.MaxImages), "")
	}
	published.SetAuthorEmail(entity.AuthorEmail())

	if err := s.recipeRepo.Create(ctx, published); err != nil {
		return nil, apperrors.TranslateStoreError(err)
	}

	// The recipe is live; a dangling draft row is only noise.
	if err := s.draftRepo.Delete(ctx, entity.ID()); err != nil {
		s.logger.Warn("Draft cleanup after publish failed",
			zap.String("draft_id", entity.ID().String()),
			zap.Error(err),
		)
	}

	if err := s.cacheRepo.DeletePrefix(ctx, cache.KeyPrefix); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("Draft published",
		zap.String("draft_id", entity.ID().String()),
		zap.String("recipe_id", published.ID().String()),
		zap.String("slug", published.Slug()),
	)

	return recipe.EntityToDTO(published), nil
}

// resolveImages uploads any inline data URL and passes hosted URLs through.
// skipFailed turns an upload error into a dropped image instead of an
// aborted publish.
func (s *Service) resolveImages(ctx context.Context, images []string, skipFailed bool) ([]string, error) {
	resolved := make([]string, 0, len(images))
	for _, img := range images {
		if !imaging.IsDataURL(img) {
			resolved = append(resolved, img)
			continue
		}

		url, err := s.uploadInline(ctx, img)
		if err != nil {
			if skipFailed {
				s.logger.Warn("Dropping image that failed to upload", zap.Error(err))
				continue
			}
			return nil, err
		}
		resolved = append(resolved, url)
	}
	return resolved, nil
}

func (s *Service) uploadInline(ctx context.Context, dataURL string) (string, error) {
	raw, err := imaging.DecodeDataURL(dataURL)
	if err != nil {
		return "", apperrors.NewUnsupportedImageError("inline image")
	}

	result, err := s.processor.Process("draft-image", raw, false)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], result.Ext)
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(result.Data), result.ContentType)
	if err != nil {
		return "", apperrors.TranslateStoreError(err)
	}
	return url, nil
}

func entityToDTO(entity *draftdomain.Draft) *inbound.DraftDTO {
	return &inbound.DraftDTO{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Category:    entity.Category(),
		PrepTime:    entity.PrepTime(),
		Servings:    entity.Servings(),
		Ingredients: entity.Ingredients(),
		Steps:       entity.Steps(),
		Images:      entity.Images(),
		CurrentStep: entity.CurrentStep(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}
