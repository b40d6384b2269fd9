// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/denizsemerci/egeli-betty/internal/domain/draft"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
)

// DraftRepository implements the draft repository interface using GORM
type DraftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) outbound.DraftRepository {
	return &DraftRepository{db: db}
}

// Save upserts a draft keyed by its id. Every autosave of the same
// authoring session writes the same row; last write wins.
func (r *DraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	model := DraftToModel(d)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model)

	return result.Error
}

// FindByID finds a draft by ID
func (r *DraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	var model DraftModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, draft.ErrDraftNotFound
		}
		return nil, result.Error
	}

	return ModelToDraft(&model), nil
}

// List returns all drafts, most recently touched first
func (r *DraftRepository) List(ctx context.Context) ([]*draft.Draft, error) {
	var models []DraftModel

	result := r.db.WithContext(ctx).Order("updated_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	drafts := make([]*draft.Draft, len(models))
	for i := range models {
		drafts[i] = ModelToDraft(&models[i])
	}

	return drafts, nil
}

// Delete removes a draft by ID
func (r *DraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&DraftModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return draft.ErrDraftNotFound
	}

	return nil
}
