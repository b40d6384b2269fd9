package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Strict entry point validation errors
	ErrTitleRequired       = errors.New("recipe title is required")
	ErrDescriptionRequired = errors.New("recipe description is required")
	ErrInvalidCategory     = errors.New("category is not one of the known categories")
	ErrInvalidPrepTime     = errors.New("prep time must be at least 1 minute")
	ErrInvalidServings     = errors.New("servings must be at least 1")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
	ErrNoSteps             = errors.New("recipe must have at least one step")

	// Slug errors
	ErrSlugImmutable = errors.New("slug is assigned once at creation and never changes")
	ErrEmptySlug     = errors.New("slug must not be empty")

	// Gallery errors
	ErrTooManyImages        = errors.New("a recipe can hold at most 10 images")
	ErrImageIndexOutOfRange = errors.New("image index is out of range")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
