// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/denizsemerci/egeli-betty/internal/domain/draft"
	"github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/domain/user"
)

// ListFilter narrows the public catalog query. Zero values mean "no filter";
// the UI sends category "Tümü" for the same effect and the repository treats
// it as unset.
type ListFilter struct {
	Category string
	Search   string // case-insensitive substring over title OR description
	Limit    int
	Offset   int
}

// RecipeRepository defines the interface for recipe persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error)

	// List returns recipes newest first, honoring the filter.
	List(ctx context.Context, filter ListFilter) ([]*recipe.Recipe, error)

	// FindRelated returns up to limit recipes sharing a category,
	// excluding the recipe itself, newest first.
	FindRelated(ctx context.Context, category recipe.Category, exclude uuid.UUID, limit int) ([]*recipe.Recipe, error)

	// SlugExists reports whether any recipe already holds the slug.
	// The publish pipeline probes this to find a free suffix.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListSlugs returns every published slug for the sitemap.
	ListSlugs(ctx context.Context) ([]string, error)
}

// DraftRepository defines the interface for draft persistence. Save has
// upsert semantics keyed by the draft id: the same session writes the same
// row on every autosave, last write wins.
type DraftRepository interface {
	Save(ctx context.Context, d *draft.Draft) error
	FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error)
	List(ctx context.Context) ([]*draft.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for the admin account row.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key under a prefix; used to invalidate
	// the whole catalog listing after a publish or edit.
	DeletePrefix(ctx context.Context, prefix string) error
}

// ErrCacheMiss is returned by CacheRepository.Get for absent keys.
// Declared here so callers don't import a concrete cache package.
type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache: key not found" }

// ErrCacheMiss is the sentinel for an absent cache key.
var ErrCacheMiss error = cacheMissError{}

// FileStorage is the hosted object store holding recipe images. Upload
// returns the publicly reachable URL for the stored object.
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
