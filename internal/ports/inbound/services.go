// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/denizsemerci/egeli-betty/internal/domain/recipe"
)

// RecipeService defines the use cases around published recipes.
type RecipeService interface {
	// Strict entry point: every field is hard-required and validated
	// before anything is written.
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)

	// UpdateRecipe edits an existing recipe. The slug is never recomputed.
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error

	GetRecipeByID(ctx context.Context, id uuid.UUID) (*RecipeDTO, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*RecipeDetailDTO, error)
	ListRecipes(ctx context.Context, query ListQuery) ([]RecipeDTO, error)
	RelatedRecipes(ctx context.Context, slug string, limit int) ([]RecipeDTO, error)

	// ScaledIngredients returns the ingredient list adjusted from the
	// recipe's stored servings to the requested servings.
	ScaledIngredients(ctx context.Context, slug string, servings int) ([]string, error)

	// ListSlugs feeds the sitemap.
	ListSlugs(ctx context.Context) ([]string, error)
}

// DraftService defines the autosave and publish use cases of the wizard.
type DraftService interface {
	// SaveDraft upserts a form snapshot. A nil DraftID allocates a new
	// draft whose id the caller keeps for the rest of the session.
	SaveDraft(ctx context.Context, cmd SaveDraftCommand) (*DraftDTO, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*DraftDTO, error)
	ListDrafts(ctx context.Context) ([]DraftDTO, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error

	// PublishDraft runs the relaxed publish pipeline: pending images are
	// uploaded, empty fields coerced, a unique slug assigned, the recipe
	// written and the draft deleted only after a successful write.
	PublishDraft(ctx context.Context, cmd PublishDraftCommand) (*RecipeDTO, error)
}

// UserService defines the admin account use cases.
type UserService interface {
	Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*ProfileDTO, error)
	ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error
}

// UploadService accepts a raw image, validates and re-encodes it, and
// stores it in the object store.
type UploadService interface {
	UploadImage(ctx context.Context, cmd UploadImageCommand) (*UploadResultDTO, error)
}

// Commands

// CreateRecipeCommand carries the strict entry point payload. Validation
// tags are enforced with go-playground/validator before the service runs.
type CreateRecipeCommand struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	PrepTime    int      `json:"prep_time" validate:"required,min=1"`
	Servings    int      `json:"servings" validate:"required,min=1"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,required"`
	Images      []string `json:"images" validate:"max=10"`
	AuthorEmail string   `json:"-"`
}

// UpdateRecipeCommand carries a full replacement of the editable fields.
// Empty fields are coerced like the wizard does; the slug stays.
type UpdateRecipeCommand struct {
	RecipeID    uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PrepTime    int       `json:"prep_time"`
	Servings    int       `json:"servings"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Images      []string  `json:"images"`
}

// SaveDraftCommand is the denormalized autosave snapshot.
type SaveDraftCommand struct {
	DraftID     *uuid.UUID `json:"draft_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	PrepTime    int        `json:"prep_time"`
	Servings    int        `json:"servings"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
	Images      []string   `json:"images"`
	CurrentStep int        `json:"current_step"`
	AuthorEmail string     `json:"-"`
}

// PublishDraftCommand finalizes a draft. SkipFailedImages decides whether a
// single image upload failure drops that image or aborts the publish.
type PublishDraftCommand struct {
	DraftID          uuid.UUID `json:"-"`
	SkipFailedImages bool      `json:"skip_failed_images"`
}

// LoginCommand carries the admin credentials.
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileCommand carries the settings form.
type UpdateProfileCommand struct {
	UserID      uuid.UUID `json:"-"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email" validate:"required,email"`
}

// ChangePasswordCommand carries the password form.
type ChangePasswordCommand struct {
	UserID          uuid.UUID `json:"-"`
	CurrentPassword string    `json:"current_password" validate:"required"`
	NewPassword     string    `json:"new_password" validate:"required,min=4"`
}

// UploadImageCommand carries one raw image file. Direct marks the stricter
// 5 MB path used when the file bypasses client-side downsizing.
type UploadImageCommand struct {
	Filename    string
	ContentType string
	Data        []byte
	Direct      bool
}

// ListQuery narrows the public listing.
type ListQuery struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// DTOs

// RecipeDTO is the wire representation of a recipe.
type RecipeDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PrepTime    int       `json:"prep_time"`
	Servings    int       `json:"servings"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Images      []string  `json:"images"`
	ImageURL    string    `json:"image_url"` // cover, kept for older clients
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecipeDetailDTO adds the shop-keyword link segments the detail page
// renders for description and ingredients.
type RecipeDetailDTO struct {
	RecipeDTO
	DescriptionSegments []recipe.Segment   `json:"description_segments"`
	IngredientSegments  [][]recipe.Segment `json:"ingredient_segments"`
}

// DraftDTO is the wire representation of a draft.
type DraftDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PrepTime    int       `json:"prep_time"`
	Servings    int       `json:"servings"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Images      []string  `json:"images"`
	CurrentStep int       `json:"current_step"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileDTO is the admin settings view.
type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
}

// AuthResponse contains the session token issued at login.
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
	User        ProfileDTO `json:"user"`
}

// UploadResultDTO reports where an accepted image landed.
type UploadResultDTO struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int    `json:"size"`
}
