package catalog

import (
	"context"
	"errors"
	"testing"

	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories    []models.ServiceCategory
	subcategories []models.SubCategory
	services      []models.ServiceRecord
	created       []models.ServiceRecord
	err           error
}

func (f *fakeRepo) GetCategories(context.Context) ([]models.ServiceCategory, error) {
	return f.categories, f.err
}

func (f *fakeRepo) GetSubcategories(context.Context) ([]models.SubCategory, error) {
	return f.subcategories, f.err
}

func (f *fakeRepo) GetServices(context.Context) ([]models.ServiceRecord, error) {
	return f.services, f.err
}

func (f *fakeRepo) CreateService(_ context.Context, rec *models.ServiceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *rec)
	return nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }

func price(v float64) *float64 { return &v }

func seededRepo() *fakeRepo {
	return &fakeRepo{
		categories: []models.ServiceCategory{
			{ID: "plumbing", Name: "Plumbing"},
			{ID: "cleaning", Name: "Cleaning"},
		},
		subcategories: []models.SubCategory{
			{ID: "leaks", CategoryID: "plumbing", Name: "Leak Repair"},
			{ID: "deep", CategoryID: "cleaning", Name: "Deep Clean"},
			{ID: "windows", CategoryID: "cleaning", Name: "Windows"},
		},
		services: []models.ServiceRecord{
			{
				ID: "s1", Title: "Emergency Plumbing Service", Description: "24/7 leak and burst pipe repair",
				CategoryID: "plumbing", SubcategoryID: "leaks",
				OncePrice: price(120), HourlyPrice: price(45),
				Provider: models.ProviderSummary{ID: "p1", Name: "Mario", Bio: "Licensed plumber"},
			},
			{
				ID: "s2", Title: "Deep House Cleaning", Description: "Top to bottom home clean",
				CategoryID: "cleaning", SubcategoryID: "deep",
				FixedPrice: price(90), Price: price(25),
				Tags:     []string{"eco"},
				Provider: models.ProviderSummary{ID: "p2", Name: "Sparkle Co", Skills: []string{"carpets"}},
			},
		},
	}
}

func newLoadedStore(t *testing.T) (*Store, *fakeRepo) {
	t.Helper()
	repo := seededRepo()
	s := NewStore(repo, nil)
	require.NoError(t, s.Refresh(context.Background()))
	return s, repo
}

func TestFilter_ExampleScenario(t *testing.T) {
	s, _ := newLoadedStore(t)

	got := s.Filter("plumb", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Emergency Plumbing Service", got[0].Title)

	assert.Len(t, s.Filter("", nil), 2)
}

func TestFilter_TitleOrDescriptionOnly(t *testing.T) {
	s, _ := newLoadedStore(t)

	assert.Len(t, s.Filter("BURST", nil), 1, "description match is case-insensitive")
	assert.Empty(t, s.Filter("mario", nil), "provider name is not a filter field")
}

func TestFilter_CategorySet(t *testing.T) {
	s, _ := newLoadedStore(t)

	got := s.Filter("", []string{"cleaning"})
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)

	assert.Empty(t, s.Filter("plumb", []string{"cleaning"}))
	assert.Len(t, s.Filter("", []string{"cleaning", "plumbing"}), 2)
}

func TestFilter_ReturnsNewSlice(t *testing.T) {
	s, _ := newLoadedStore(t)

	got := s.Filter("", nil)
	got[0].Title = "changed"

	svc, ok := s.GetByID(got[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "changed", svc.Title)
}

func TestRefresh_NormalizesLegacyPrices(t *testing.T) {
	s, _ := newLoadedStore(t)

	modern, ok := s.GetByID("s1")
	require.True(t, ok)
	assert.Equal(t, 120.0, modern.OncePrice)
	assert.Equal(t, 45.0, modern.HourlyPrice)

	legacy, ok := s.GetByID("s2")
	require.True(t, ok)
	assert.Equal(t, 90.0, legacy.OncePrice)
	assert.Equal(t, 25.0, legacy.HourlyPrice)
	assert.Equal(t, "Cleaning", legacy.CategoryName)
	assert.Equal(t, "Deep Clean", legacy.SubcategoryName)
}

func TestNormalizeRecord_Fallbacks(t *testing.T) {
	item := NormalizeRecord(models.ServiceRecord{ID: "x"})
	assert.Zero(t, item.OncePrice)
	assert.Zero(t, item.HourlyPrice)
	assert.NotNil(t, item.Tags)

	item = NormalizeRecord(models.ServiceRecord{OncePrice: price(0), FixedPrice: price(50)})
	assert.Zero(t, item.OncePrice, "explicit once_price wins even when zero")
}

func TestRefresh_ErrorKeepsPreviousSnapshot(t *testing.T) {
	s, repo := newLoadedStore(t)
	repo.err = errors.New("mongo down")

	require.Error(t, s.Refresh(context.Background()))
	assert.Len(t, s.Services(), 2)
}

func TestLookups(t *testing.T) {
	s, _ := newLoadedStore(t)

	_, ok := s.GetByID("missing")
	assert.False(t, ok)

	cat, ok := s.GetCategoryByID("cleaning")
	require.True(t, ok)
	assert.Equal(t, "Cleaning", cat.Name)

	_, ok = s.GetCategoryByID("gardening")
	assert.False(t, ok)

	assert.Len(t, s.GetSubcategoriesByCategory("cleaning"), 2)
	assert.Empty(t, s.GetSubcategoriesByCategory("gardening"))
	assert.Len(t, s.GetServicesByCategory("plumbing"), 1)
	assert.Empty(t, s.GetServicesByCategory("gardening"))
}

func TestExplore_AnyTokenAnyFieldThenRanked(t *testing.T) {
	s, _ := newLoadedStore(t)

	got := s.Explore("carpets plumber", nil)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID, "first token matches provider skills")
	assert.Equal(t, "s1", got[1].ID)

	got = s.Explore("eco", []string{"plumbing"})
	assert.Empty(t, got)

	assert.Len(t, s.Explore("", nil), 2)
}

func TestPublish_FirstMissingField(t *testing.T) {
	s, _ := newLoadedStore(t)
	provider := models.ProviderSummary{ID: "p9", Name: "Nina"}

	cases := []struct {
		name  string
		req   PublishRequest
		field string
	}{
		{"empty", PublishRequest{}, "title"},
		{"no description", PublishRequest{Title: "Gutter cleaning"}, "description"},
		{"no category", PublishRequest{Title: "t", Description: "d"}, "categoryId"},
		{"no price", PublishRequest{Title: "t", Description: "d", CategoryID: "cleaning"}, "price"},
		{"no days", PublishRequest{Title: "t", Description: "d", CategoryID: "cleaning", HourlyPrice: 20}, "availability.days"},
		{"no hours", PublishRequest{
			Title: "t", Description: "d", CategoryID: "cleaning", OncePrice: 20,
			Availability: models.Availability{Days: "Mon - Fri"},
		}, "availability.hours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Publish(context.Background(), provider, tc.req)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}
}

func TestPublish_AddsToSnapshot(t *testing.T) {
	s, repo := newLoadedStore(t)

	item, err := s.Publish(context.Background(), models.ProviderSummary{ID: "p9", Name: "Nina"}, PublishRequest{
		Title:        "Window Washing",
		Description:  "Streak-free windows",
		CategoryID:   "cleaning",
		HourlyPrice:  30,
		Availability: models.Availability{Days: "Mon - Fri", Hours: "9:00 AM - 5:00 PM"},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, item.ID, repo.created[0].ID)
	assert.Equal(t, "Cleaning", item.CategoryName)

	found, ok := s.GetByID(item.ID)
	require.True(t, ok)
	assert.Equal(t, 30.0, found.HourlyPrice)
	assert.Len(t, s.GetServicesByCategory("cleaning"), 2)
}

func TestPublish_UnknownCategory(t *testing.T) {
	s, _ := newLoadedStore(t)

	_, err := s.Publish(context.Background(), models.ProviderSummary{ID: "p9"}, PublishRequest{
		Title: "t", Description: "d", CategoryID: "astrology", OncePrice: 10,
		Availability: models.Availability{Days: "Mon", Hours: "9-5"},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
