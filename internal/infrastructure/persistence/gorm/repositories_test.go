package gorm

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/denizsemerci/egeli-betty/internal/domain/draft"
	"github.com/denizsemerci/egeli-betty/internal/domain/recipe"
	"github.com/denizsemerci/egeli-betty/internal/domain/user"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
)

type RepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	recipes outbound.RecipeRepository
	drafts  outbound.DraftRepository
	users   outbound.UserRepository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(db.Migrator().DropTable(&RecipeModel{}, &DraftModel{}, &UserModel{}))
	s.Require().NoError(db.AutoMigrate(&RecipeModel{}, &DraftModel{}, &UserModel{}))

	s.db = db
	s.recipes = NewRecipeRepository(db)
	s.drafts = NewDraftRepository(db)
	s.users = NewUserRepository(db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) newRecipe(title string, category recipe.Category, slug string) *recipe.Recipe {
	rec, err := recipe.NewRecipe(
		title,
		"Klasik bir ev yemeği",
		category,
		20,
		4,
		[]string{"200 gr un", "2 yumurta"},
		[]string{"Karıştırın", "Pişirin"},
	)
	s.Require().NoError(err)
	s.Require().NoError(rec.AssignSlug(slug))
	return rec
}

func (s *RepositoryTestSuite) TestRecipeCreateAndFind() {
	rec := s.newRecipe("Menemen", recipe.CategoryAnaYemekler, "menemen")
	s.Require().NoError(s.recipes.Create(s.ctx, rec))

	byID, err := s.recipes.FindByID(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Equal("Menemen", byID.Title())
	s.Equal([]string{"200 gr un", "2 yumurta"}, byID.Ingredients())

	bySlug, err := s.recipes.FindBySlug(s.ctx, "menemen")
	s.Require().NoError(err)
	s.Equal(rec.ID(), bySlug.ID())
}

func (s *RepositoryTestSuite) TestRecipeNotFound() {
	_, err := s.recipes.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, recipe.ErrRecipeNotFound)

	_, err = s.recipes.FindBySlug(s.ctx, "yok-boyle-bir-tarif")
	s.ErrorIs(err, recipe.ErrRecipeNotFound)

	s.ErrorIs(s.recipes.Delete(s.ctx, uuid.New()), recipe.ErrRecipeNotFound)
}

func (s *RepositoryTestSuite) TestSlugUniqueConstraint() {
	first := s.newRecipe("Menemen", recipe.CategoryAnaYemekler, "menemen")
	s.Require().NoError(s.recipes.Create(s.ctx, first))

	second := s.newRecipe("Menemen 2", recipe.CategoryAnaYemekler, "menemen")
	s.Error(s.recipes.Create(s.ctx, second))
}

func (s *RepositoryTestSuite) TestSlugExists() {
	rec := s.newRecipe("Menemen", recipe.CategoryAnaYemekler, "menemen")
	s.Require().NoError(s.recipes.Create(s.ctx, rec))

	exists, err := s.recipes.SlugExists(s.ctx, "menemen")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.recipes.SlugExists(s.ctx, "menemen-1")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositoryTestSuite) TestListFilters() {
	s.Require().NoError(s.recipes.Create(s.ctx, s.newRecipe("Mercimek Çorbası", recipe.CategoryCorbalar, "mercimek-corbasi")))
	s.Require().NoError(s.recipes.Create(s.ctx, s.newRecipe("Ezogelin Çorbası", recipe.CategoryCorbalar, "ezogelin-corbasi")))
	s.Require().NoError(s.recipes.Create(s.ctx, s.newRecipe("Baklava", recipe.CategoryTatlilar, "baklava")))

	all, err := s.recipes.List(s.ctx, outbound.ListFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	soups, err := s.recipes.List(s.ctx, outbound.ListFilter{Category: "Çorbalar"})
	s.Require().NoError(err)
	s.Len(soups, 2)

	// "Tümü" behaves like no category filter
	tumu, err := s.recipes.List(s.ctx, outbound.ListFilter{Category: "Tümü"})
	s.Require().NoError(err)
	s.Len(tumu, 3)

	search, err := s.recipes.List(s.ctx, outbound.ListFilter{Search: "baklava"})
	s.Require().NoError(err)
	s.Require().Len(search, 1)
	s.Equal("Baklava", search[0].Title())

	// search also matches descriptions
	desc, err := s.recipes.List(s.ctx, outbound.ListFilter{Search: "ev yeme"})
	s.Require().NoError(err)
	s.Len(desc, 3)
}

func (s *RepositoryTestSuite) TestListPagination() {
	faker := gofakeit.New(7)
	for i := 0; i < 25; i++ {
		rec, err := recipe.NewRecipe(
			fmt.Sprintf("Tarif %02d", i),
			faker.Sentence(8),
			recipe.CategoryAnaYemekler,
			faker.Number(10, 90),
			faker.Number(2, 8),
			[]string{faker.Word()},
			[]string{faker.Sentence(5)},
		)
		s.Require().NoError(err)
		s.Require().NoError(rec.AssignSlug(fmt.Sprintf("tarif-%02d", i)))
		s.Require().NoError(s.recipes.Create(s.ctx, rec))
	}

	page, err := s.recipes.List(s.ctx, outbound.ListFilter{Limit: 10})
	s.Require().NoError(err)
	s.Len(page, 10)

	tail, err := s.recipes.List(s.ctx, outbound.ListFilter{Limit: 10, Offset: 20})
	s.Require().NoError(err)
	s.Len(tail, 5)
}

func (s *RepositoryTestSuite) TestFindRelated() {
	a := s.newRecipe("Mercimek Çorbası", recipe.CategoryCorbalar, "mercimek-corbasi")
	b := s.newRecipe("Ezogelin Çorbası", recipe.CategoryCorbalar, "ezogelin-corbasi")
	c := s.newRecipe("Baklava", recipe.CategoryTatlilar, "baklava")
	for _, rec := range []*recipe.Recipe{a, b, c} {
		s.Require().NoError(s.recipes.Create(s.ctx, rec))
	}

	related, err := s.recipes.FindRelated(s.ctx, recipe.CategoryCorbalar, a.ID(), 3)
	s.Require().NoError(err)
	s.Require().Len(related, 1)
	s.Equal(b.ID(), related[0].ID())
}

func (s *RepositoryTestSuite) TestListSlugs() {
	s.Require().NoError(s.recipes.Create(s.ctx, s.newRecipe("Menemen", recipe.CategoryAnaYemekler, "menemen")))
	s.Require().NoError(s.recipes.Create(s.ctx, s.newRecipe("Baklava", recipe.CategoryTatlilar, "baklava")))

	slugs, err := s.recipes.ListSlugs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"menemen", "baklava"}, slugs)
}

func (s *RepositoryTestSuite) TestDraftUpsert() {
	d, err := draft.New(draft.Snapshot{Title: "Menemen", CurrentStep: 1})
	s.Require().NoError(err)
	s.Require().NoError(s.drafts.Save(s.ctx, d))

	s.Require().NoError(d.Apply(draft.Snapshot{Title: "Menemen Tarifi", CurrentStep: 2}))
	s.Require().NoError(s.drafts.Save(s.ctx, d))

	drafts, err := s.drafts.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(drafts, 1)
	s.Equal("Menemen Tarifi", drafts[0].Title())
	s.Equal(2, drafts[0].CurrentStep())
}

func (s *RepositoryTestSuite) TestDraftDelete() {
	d, err := draft.New(draft.Snapshot{Title: "Menemen"})
	s.Require().NoError(err)
	s.Require().NoError(s.drafts.Save(s.ctx, d))

	s.Require().NoError(s.drafts.Delete(s.ctx, d.ID()))
	_, err = s.drafts.FindByID(s.ctx, d.ID())
	s.ErrorIs(err, draft.ErrDraftNotFound)

	s.ErrorIs(s.drafts.Delete(s.ctx, d.ID()), draft.ErrDraftNotFound)
}

func (s *RepositoryTestSuite) TestUserRoundTrip() {
	u, err := user.New("Betül", "Betül", "betul@egelibetty.com", "0412")
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(s.ctx, u))

	found, err := s.users.FindByUsername(s.ctx, "betül")
	s.Require().NoError(err)
	s.Equal(u.ID(), found.ID())
	s.NoError(found.Authenticate("0412"))

	found.UpdateProfile("Betty", "betty@egelibetty.com")
	s.Require().NoError(s.users.Update(s.ctx, found))

	updated, err := s.users.FindByID(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Equal("Betty", updated.DisplayName())
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestStringSliceScanValue(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	require.Equal(t, StringSlice{"a", "b"}, s)

	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}
