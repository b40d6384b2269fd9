package draft

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	draftdomain "github.com/denizsemerci/egeli-betty/internal/domain/draft"
	recipedomain "github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/imaging"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/memory"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
	"github.com/denizsemerci/egeli-betty/pkg/logger"
)

type fakeDraftRepo struct {
	drafts map[uuid.UUID]*draftdomain.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[uuid.UUID]*draftdomain.Draft)}
}

func (f *fakeDraftRepo) Save(_ context.Context, d *draftdomain.Draft) error {
	f.drafts[d.ID()] = d
	return nil
}

func (f *fakeDraftRepo) FindByID(_ context.Context, id uuid.UUID) (*draftdomain.Draft, error) {
	d, ok := f.drafts[id]
	if !ok {
		return nil, draftdomain.ErrDraftNotFound
	}
	return d, nil
}

func (f *fakeDraftRepo) List(_ context.Context) ([]*draftdomain.Draft, error) {
	out := make([]*draftdomain.Draft, 0, len(f.drafts))
	for _, d := range f.drafts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt().After(out[j].UpdatedAt()) })
	return out, nil
}

func (f *fakeDraftRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.drafts[id]; !ok {
		return draftdomain.ErrDraftNotFound
	}
	delete(f.drafts, id)
	return nil
}

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*recipedomain.Recipe
	failAll bool
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uuid.UUID]*recipedomain.Recipe)}
}

func (f *fakeRecipeRepo) Create(_ context.Context, r *recipedomain.Recipe) error {
	if f.failAll {
		return assert.AnError
	}
	f.recipes[r.ID()] = r
	return nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, r *recipedomain.Recipe) error {
	f.recipes[r.ID()] = r
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipedomain.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, recipedomain.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeRecipeRepo) FindBySlug(_ context.Context, slug string) (*recipedomain.Recipe, error) {
	for _, r := range f.recipes {
		if r.Slug() == slug {
			return r, nil
		}
	}
	return nil, recipedomain.ErrRecipeNotFound
}

func (f *fakeRecipeRepo) List(_ context.Context, _ outbound.ListFilter) ([]*recipedomain.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) FindRelated(_ context.Context, _ recipedomain.Category, _ uuid.UUID, _ int) ([]*recipedomain.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, r := range f.recipes {
		if r.Slug() == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepo) ListSlugs(_ context.Context) ([]string, error) { return nil, nil }

type fakeStorage struct {
	uploads map[string][]byte
	fail    bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.uploads[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

type fixture struct {
	svc     inbound.DraftService
	drafts  *fakeDraftRepo
	recipes *fakeRecipeRepo
	storage *fakeStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxFileSize:       10 << 20,
			MaxDirectFileSize: 5 << 20,
			ReencodeThreshold: 1 << 20,
			MaxWidth:          1920,
			JPEGQuality:       85,
			AllowedTypes:      []string{"image/png", "image/jpeg", "image/webp"},
		},
	}

	drafts := newFakeDraftRepo()
	recipes := newFakeRecipeRepo()
	storage := newFakeStorage()
	svc := NewService(
		drafts,
		recipes,
		memory.NewCacheRepository(),
		storage,
		imaging.NewProcessor(cfg, logger.NewNop()),
		logger.NewNop(),
	)

	return &fixture{svc: svc, drafts: drafts, recipes: recipes, storage: storage}
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveDraftAllocatesID(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		Title:       "Yarım kalmış tarif",
		CurrentStep: 1,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, 1, dto.CurrentStep)
	assert.Len(t, f.drafts.drafts, 1)
}

func TestSaveDraftUpserts(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{Title: "İlk hali"})
	require.NoError(t, err)

	second, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		DraftID:     &first.ID,
		Title:       "Düzeltilmiş hali",
		CurrentStep: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Düzeltilmiş hali", second.Title)
	assert.Equal(t, 3, second.CurrentStep)
	assert.Len(t, f.drafts.drafts, 1)
}

func TestSaveDraftRejectsBadStep(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{CurrentStep: 7})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestSaveDraftUnknownID(t *testing.T) {
	f := newFixture(t)

	missing := uuid.New()
	_, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{DraftID: &missing})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeDraftNotFound, appErr.Code)
}

func TestListAndDeleteDrafts(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{Title: "Bir"})
	require.NoError(t, err)
	second, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{Title: "İki"})
	require.NoError(t, err)

	listed, err := f.svc.ListDrafts(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, f.svc.DeleteDraft(context.Background(), second.ID))

	listed, err = f.svc.ListDrafts(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Bir", listed[0].Title)
}

func TestPublishDraftCoercesEmptyFields(t *testing.T) {
	f := newFixture(t)

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{CurrentStep: 2})
	require.NoError(t, err)

	published, err := f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
	require.NoError(t, err)

	assert.Equal(t, recipedomain.FallbackTitle, published.Title)
	assert.Equal(t, []string{recipedomain.PlaceholderIngredient}, published.Ingredients)
	assert.Equal(t, []string{recipedomain.PlaceholderStep}, published.Steps)
	assert.NotEmpty(t, published.Slug)

	// Publish consumes the draft.
	_, err = f.svc.GetDraft(context.Background(), saved.ID)
	require.Error(t, err)
	assert.Len(t, f.recipes.recipes, 1)
}

func TestPublishDraftUploadsInlineImages(t *testing.T) {
	f := newFixture(t)

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		Title:  "Fotoğraflı tarif",
		Images: []string{pngDataURL(t), "https://cdn.test/recipes/mevcut.jpg"},
	})
	require.NoError(t, err)

	published, err := f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
	require.NoError(t, err)

	require.Len(t, published.Images, 2)
	assert.Contains(t, published.Images[0], "https://cdn.test/recipes/")
	assert.Equal(t, "https://cdn.test/recipes/mevcut.jpg", published.Images[1])
	assert.Len(t, f.storage.uploads, 1)
}

func TestPublishDraftUploadFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.storage.fail = true

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		Title:  "Fotoğraflı tarif",
		Images: []string{pngDataURL(t)},
	})
	require.NoError(t, err)

	_, err = f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
	require.Error(t, err)

	// The draft survives a failed publish.
	_, err = f.svc.GetDraft(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Empty(t, f.recipes.recipes)
}

func TestPublishDraftSkipsFailedImages(t *testing.T) {
	f := newFixture(t)
	f.storage.fail = true

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		Title:  "Fotoğraflı tarif",
		Images: []string{pngDataURL(t), "https://cdn.test/recipes/mevcut.jpg"},
	})
	require.NoError(t, err)

	published, err := f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{
		DraftID:          saved.ID,
		SkipFailedImages: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.test/recipes/mevcut.jpg"}, published.Images)
}

func TestPublishDraftRejectsTooManyImages(t *testing.T) {
	f := newFixture(t)

	images := make([]string, recipedomain.MaxImages+1)
	for i := range images {
		images[i] = fmt.Sprintf("https://cdn.test/recipes/gorsel-%d.jpg", i)
	}

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{
		Title:  "Görsel dolu tarif",
		Images: images,
	})
	require.NoError(t, err)

	_, err = f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTooManyImages, apperrors.AsAppError(err).Code)

	// The draft survives and no recipe was written.
	_, err = f.svc.GetDraft(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Empty(t, f.recipes.recipes)
}

func TestPublishDraftSlugCollision(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{Title: "Mercimek Çorbası"})
		require.NoError(t, err)

		published, err := f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
		require.NoError(t, err)

		want := "mercimek-corbasi"
		if i > 0 {
			want = fmt.Sprintf("mercimek-corbasi-%d", i)
		}
		assert.Equal(t, want, published.Slug)
	}
}

func TestPublishDraftStoreFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.recipes.failAll = true

	saved, err := f.svc.SaveDraft(context.Background(), inbound.SaveDraftCommand{Title: "Kalacak taslak"})
	require.NoError(t, err)

	_, err = f.svc.PublishDraft(context.Background(), inbound.PublishDraftCommand{DraftID: saved.ID})
	require.Error(t, err)

	_, err = f.svc.GetDraft(context.Background(), saved.ID)
	require.NoError(t, err)
}
