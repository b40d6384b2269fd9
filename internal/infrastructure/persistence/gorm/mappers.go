// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/denizsemerci/egeli-betty/internal/domain/draft"
	"github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/domain/user"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:          r.ID(),
		Title:       r.Title(),
		Description: r.Description(),
		Category:    string(r.Category()),
		PrepTime:    r.PrepTime(),
		Servings:    r.Servings(),
		Ingredients: StringSlice(r.Ingredients()),
		Steps:       StringSlice(r.Steps()),
		Images:      StringSlice(r.Images()),
		Slug:        r.Slug(),
		AuthorEmail: r.AuthorEmail(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	return recipe.Restore(
		model.ID,
		model.Title,
		model.Description,
		recipe.Category(model.Category),
		model.PrepTime,
		model.Servings,
		[]string(model.Ingredients),
		[]string(model.Steps),
		[]string(model.Images),
		model.Slug,
		model.AuthorEmail,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// DraftToModel converts a domain draft to a GORM model
func DraftToModel(d *draft.Draft) *DraftModel {
	return &DraftModel{
		ID:          d.ID(),
		Title:       d.Title(),
		Description: d.Description(),
		Category:    d.Category(),
		PrepTime:    d.PrepTime(),
		Servings:    d.Servings(),
		Ingredients: StringSlice(d.Ingredients()),
		Steps:       StringSlice(d.Steps()),
		Images:      StringSlice(d.Images()),
		CurrentStep: d.CurrentStep(),
		AuthorEmail: d.AuthorEmail(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

// ModelToDraft converts a GORM model to a domain draft
func ModelToDraft(model *DraftModel) *draft.Draft {
	return draft.Restore(
		model.ID,
		draft.Snapshot{
			Title:       model.Title,
			Description: model.Description,
			Category:    model.Category,
			PrepTime:    model.PrepTime,
			Servings:    model.Servings,
			Ingredients: []string(model.Ingredients),
			Steps:       []string(model.Steps),
			Images:      []string(model.Images),
			CurrentStep: model.CurrentStep,
			AuthorEmail: model.AuthorEmail,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		DisplayName:  u.DisplayName(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(model *UserModel) *user.User {
	return user.Restore(
		model.ID,
		model.Username,
		model.DisplayName,
		model.Email,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
