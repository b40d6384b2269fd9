// Package recipe contains the core domain logic for published recipes:
// the recipe entity itself, slug derivation, ingredient scaling and
// shop-keyword linking.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is one of the fixed recipe categories shown on the public site.
type Category string

const (
	CategoryZeytinyaglilar Category = "Zeytinyağlılar"
	CategoryHamurIsi       Category = "Hamur İşi"
	CategoryTatlilar       Category = "Tatlılar"
	CategorySalatalar      Category = "Salatalar"
	CategoryCorbalar       Category = "Çorbalar"
	CategoryAnaYemekler    Category = "Ana Yemekler"
)

// Categories returns all valid categories in display order. The first entry
// doubles as the fallback category for relaxed publishes.
func Categories() []Category {
	return []Category{
		CategoryZeytinyaglilar,
		CategoryHamurIsi,
		CategoryTatlilar,
		CategorySalatalar,
		CategoryCorbalar,
		CategoryAnaYemekler,
	}
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Fallback values applied when the relaxed authoring path submits empty
// fields. A published recipe never stores empty required fields.
const (
	FallbackTitle         = "İsimsiz Tarif"
	PlaceholderIngredient = "Malzeme belirtilmedi"
	PlaceholderStep       = "Yapılış belirtilmedi"
)

// MaxImages caps the image gallery per recipe. The first image is the cover.
const MaxImages = 10

// Recipe represents a published, publicly addressable recipe.
type Recipe struct {
	id          uuid.UUID
	title       string
	description string
	category    Category
	prepTime    int // minutes
	servings    int
	ingredients []string
	steps       []string
	images      []string
	slug        string
	authorEmail string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRecipe creates a recipe through the strict entry point: every field is
// hard-required and invalid input is rejected instead of coerced.
func NewRecipe(title, description string, category Category, prepTime, servings int, ingredients, steps []string) (*Recipe, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return nil, ErrTitleRequired
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if prepTime < 1 {
		return nil, ErrInvalidPrepTime
	}
	if servings < 1 {
		return nil, ErrInvalidServings
	}

	ingredients = trimNonEmpty(ingredients)
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	steps = trimNonEmpty(steps)
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	now := time.Now()
	return &Recipe{
		id:          uuid.New(),
		title:       title,
		description: description,
		category:    category,
		prepTime:    prepTime,
		servings:    servings,
		ingredients: ingredients,
		steps:       steps,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewRecipeWithFallbacks creates a recipe through the relaxed entry point
// used by the wizard submit: empty or invalid fields are coerced to safe
// fallbacks so the save never fails validation. It cannot return an error.
func NewRecipeWithFallbacks(title, description string, category Category, prepTime, servings int, ingredients, steps []string) *Recipe {
	title = strings.TrimSpace(title)
	if title == "" {
		title = FallbackTitle
	}
	if !category.IsValid() {
		category = Categories()[0]
	}
	if prepTime < 1 {
		prepTime = 1
	}
	if servings < 1 {
		servings = 1
	}

	ingredients = trimNonEmpty(ingredients)
	if len(ingredients) == 0 {
		ingredients = []string{PlaceholderIngredient}
	}
	steps = trimNonEmpty(steps)
	if len(steps) == 0 {
		steps = []string{PlaceholderStep}
	}

	now := time.Now()
	return &Recipe{
		id:          uuid.New(),
		title:       title,
		description: strings.TrimSpace(description),
		category:    category,
		prepTime:    prepTime,
		servings:    servings,
		ingredients: ingredients,
		steps:       steps,
		createdAt:   now,
		updatedAt:   now,
	}
}

// Restore rebuilds a recipe from persisted state. Used by the persistence
// mappers only; no validation is re-applied to stored rows.
func Restore(id uuid.UUID, title, description string, category Category, prepTime, servings int, ingredients, steps, images []string, slug, authorEmail string, createdAt, updatedAt time.Time) *Recipe {
	return &Recipe{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		prepTime:    prepTime,
		servings:    servings,
		ingredients: ingredients,
		steps:       steps,
		images:      images,
		slug:        slug,
		authorEmail: authorEmail,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Recipe) ID() uuid.UUID         { return r.id }
func (r *Recipe) Title() string         { return r.title }
func (r *Recipe) Description() string   { return r.description }
func (r *Recipe) Category() Category    { return r.category }
func (r *Recipe) PrepTime() int         { return r.prepTime }
func (r *Recipe) Servings() int         { return r.servings }
func (r *Recipe) Ingredients() []string { return r.ingredients }
func (r *Recipe) Steps() []string       { return r.steps }
func (r *Recipe) Images() []string      { return r.images }
func (r *Recipe) Slug() string          { return r.slug }
func (r *Recipe) AuthorEmail() string   { return r.authorEmail }
func (r *Recipe) CreatedAt() time.Time  { return r.createdAt }
func (r *Recipe) UpdatedAt() time.Time  { return r.updatedAt }

// CoverImage returns the first image URL, or "" when the gallery is empty.
func (r *Recipe) CoverImage() string {
	if len(r.images) == 0 {
		return ""
	}
	return r.images[0]
}

// AssignSlug sets the slug exactly once, at creation time. Edits never
// recompute the slug, so a second assignment is rejected.
func (r *Recipe) AssignSlug(slug string) error {
	if r.slug != "" {
		return ErrSlugImmutable
	}
	if slug == "" {
		return ErrEmptySlug
	}
	r.slug = slug
	return nil
}

// SetAuthorEmail records the authoring account for the row.
func (r *Recipe) SetAuthorEmail(email string) {
	r.authorEmail = email
}

// SetImages replaces the ordered gallery. Entries beyond MaxImages are
// rejected rather than silently truncated.
func (r *Recipe) SetImages(urls []string) error {
	if len(urls) > MaxImages {
		return ErrTooManyImages
	}
	r.images = urls
	r.updatedAt = time.Now()
	return nil
}

// AddImage appends a hosted URL to the gallery, enforcing the cap.
func (r *Recipe) AddImage(url string) error {
	if len(r.images) >= MaxImages {
		return ErrTooManyImages
	}
	r.images = append(r.images, url)
	r.updatedAt = time.Now()
	return nil
}

// RemoveImage deletes the image at index, reindexing the remainder. Index 0
// remains the cover after removal.
func (r *Recipe) RemoveImage(index int) error {
	if index < 0 || index >= len(r.images) {
		return ErrImageIndexOutOfRange
	}
	r.images = append(r.images[:index], r.images[index+1:]...)
	r.updatedAt = time.Now()
	return nil
}

// UpdateContent replaces all editable fields using the relaxed coercion
// rules. The slug is deliberately left untouched.
func (r *Recipe) UpdateContent(title, description string, category Category, prepTime, servings int, ingredients, steps []string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = FallbackTitle
	}
	if !category.IsValid() {
		category = Categories()[0]
	}
	if prepTime < 1 {
		prepTime = 1
	}
	if servings < 1 {
		servings = 1
	}
	ingredients = trimNonEmpty(ingredients)
	if len(ingredients) == 0 {
		ingredients = []string{PlaceholderIngredient}
	}
	steps = trimNonEmpty(steps)
	if len(steps) == 0 {
		steps = []string{PlaceholderStep}
	}

	r.title = title
	r.description = strings.TrimSpace(description)
	r.category = category
	r.prepTime = prepTime
	r.servings = servings
	r.ingredients = ingredients
	r.steps = steps
	r.updatedAt = time.Now()
}

// trimNonEmpty trims every entry and drops the blank ones, preserving order.
func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
