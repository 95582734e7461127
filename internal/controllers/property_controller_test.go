package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/models"
	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/routes"
)

// -----------------------------------------------------------------------------
// Stub service
// -----------------------------------------------------------------------------

type stubPropertyService struct {
	props      []*models.Property
	cities     []string
	types      []*models.PropertyType
	available  bool
	bySlug     *models.Property
	lastFilter repositories.PropertyFilter
}

func (s *stubPropertyService) ListPublished(_ context.Context, f repositories.PropertyFilter) []*models.Property {
	s.lastFilter = f
	return s.props
}

func (s *stubPropertyService) ListFeatured(_ context.Context) []*models.Property {
	return s.props
}

func (s *stubPropertyService) HasPublished(_ context.Context) bool { return s.available }

func (s *stubPropertyService) ListCities(_ context.Context) []string { return s.cities }

func (s *stubPropertyService) GetBySlug(_ context.Context, _ string) *models.Property {
	return s.bySlug
}

func (s *stubPropertyService) ListTypes(_ context.Context) []*models.PropertyType { return s.types }

func newPropertyRouter(svc *stubPropertyService) *mux.Router {
	ctrl := NewPropertyController(svc)

	router := mux.NewRouter()
	router.HandleFunc(routes.Properties, ctrl.ListProperties).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesFeatured, ctrl.ListFeatured).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesCities, ctrl.ListCities).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesExist, ctrl.HasProperties).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyBySlug, ctrl.GetProperty).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyTypes, ctrl.ListTypes).Methods(http.MethodGet)
	return router
}

func get(t *testing.T, router *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestListPropertiesPassesFiltersThrough(t *testing.T) {
	svc := &stubPropertyService{}
	router := newPropertyRouter(svc)

	rec := get(t, router, "/api/v1/properties?type=maison&ville=Nantes&prix_min=100000&prix_max=250000")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maison", svc.lastFilter.TypeSlug)
	assert.Equal(t, "Nantes", svc.lastFilter.City)
	require.NotNil(t, svc.lastFilter.MinPrice)
	assert.Equal(t, 100000, *svc.lastFilter.MinPrice)
	require.NotNil(t, svc.lastFilter.MaxPrice)
	assert.Equal(t, 250000, *svc.lastFilter.MaxPrice)
}

func TestListPropertiesMalformedNumericFilterIgnored(t *testing.T) {
	svc := &stubPropertyService{}
	router := newPropertyRouter(svc)

	rec := get(t, router, "/api/v1/properties?prix_min=cher")

	// The request succeeds; the bogus bound is simply dropped.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.lastFilter.MinPrice)
}

func TestListPropertiesEmptyResultIsValidJSON(t *testing.T) {
	router := newPropertyRouter(&stubPropertyService{props: []*models.Property{}})

	rec := get(t, router, "/api/v1/properties")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Properties)
	assert.Zero(t, resp.Count)
}

func TestHasPropertiesEndpoint(t *testing.T) {
	router := newPropertyRouter(&stubPropertyService{available: true})

	rec := get(t, router, "/api/v1/properties/available")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.AvailableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
}

func TestGetPropertyBySlug(t *testing.T) {
	p := &models.Property{ID: uuid.New(), Title: "Longère rénovée", Slug: "longere-renovee"}
	router := newPropertyRouter(&stubPropertyService{bySlug: p})

	rec := get(t, router, "/api/v1/properties/longere-renovee")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, p.Slug, got.Slug)
}

func TestGetPropertyUnknownSlugIs404(t *testing.T) {
	router := newPropertyRouter(&stubPropertyService{})

	rec := get(t, router, "/api/v1/properties/nexiste-pas")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// "featured", "cities" and "available" must win over the {slug} route.
func TestStaticRoutesNotShadowedBySlug(t *testing.T) {
	svc := &stubPropertyService{cities: []string{"Angers"}}
	router := newPropertyRouter(svc)

	rec := get(t, router, "/api/v1/properties/cities")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.CitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Angers"}, resp.Cities)
}

func TestListTypesCarriesFieldPolicy(t *testing.T) {
	router := newPropertyRouter(&stubPropertyService{
		types: []*models.PropertyType{
			{ID: uuid.New(), Name: "Terrain", Slug: "terrain"},
			{ID: uuid.New(), Name: "Maison", Slug: "maison"},
		},
	})

	rec := get(t, router, "/api/v1/property-types")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Types []struct {
			Slug        string `json:"slug"`
			FieldPolicy struct {
				Bedrooms    bool `json:"bedrooms"`
				LandSurface bool `json:"land_surface"`
			} `json:"field_policy"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Types, 2)

	assert.False(t, resp.Types[0].FieldPolicy.Bedrooms, "a plot has no bedroom count")
	assert.True(t, resp.Types[0].FieldPolicy.LandSurface)
	assert.True(t, resp.Types[1].FieldPolicy.Bedrooms)
}
