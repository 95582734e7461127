package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etude-leroux/site-api/internal/models"
	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/routes"
	"github.com/etude-leroux/site-api/internal/utils"
)

// -----------------------------------------------------------------------------
// Stub repositories
// -----------------------------------------------------------------------------

type stubAdminPropertyRepo struct {
	writeErr error
	created  *models.Property
}

func (s *stubAdminPropertyRepo) ListPublished(_ context.Context, _ repositories.PropertyFilter) ([]*models.Property, error) {
	return nil, nil
}

func (s *stubAdminPropertyRepo) ListFeatured(_ context.Context) ([]*models.Property, error) {
	return nil, nil
}

func (s *stubAdminPropertyRepo) HasPublished(_ context.Context) (bool, error) { return false, nil }

func (s *stubAdminPropertyRepo) ListCities(_ context.Context) ([]string, error) { return nil, nil }

func (s *stubAdminPropertyRepo) GetPublishedBySlug(_ context.Context, _ string) (*models.Property, error) {
	return nil, nil
}

func (s *stubAdminPropertyRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.Property, error) {
	return s.created, nil
}

func (s *stubAdminPropertyRepo) Create(_ context.Context, p *models.Property) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.created = p
	return nil
}

func (s *stubAdminPropertyRepo) Update(_ context.Context, _ *models.Property) error {
	return s.writeErr
}

func (s *stubAdminPropertyRepo) SetPublished(_ context.Context, _ uuid.UUID, _ bool) error {
	return s.writeErr
}

func (s *stubAdminPropertyRepo) Delete(_ context.Context, _ uuid.UUID) error { return s.writeErr }

type stubAdminImageRepo struct {
	writeErr error
	lastImg  *models.PropertyImage
}

func (s *stubAdminImageRepo) ListByPropertyIDs(_ context.Context, _ []string) ([]models.PropertyImage, error) {
	return nil, nil
}

func (s *stubAdminImageRepo) Create(_ context.Context, img *models.PropertyImage) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.lastImg = img
	return nil
}

func (s *stubAdminImageRepo) Delete(_ context.Context, _ uuid.UUID) error { return s.writeErr }

func newAdminRouter(props *stubAdminPropertyRepo, images *stubAdminImageRepo) *mux.Router {
	ctrl := NewAdminPropertyController(props, images)

	router := mux.NewRouter()
	router.HandleFunc(routes.AdminProperties, ctrl.CreateProperty).Methods(http.MethodPost)
	router.HandleFunc(routes.AdminPropertyByID, ctrl.UpdateProperty).Methods(http.MethodPut)
	router.HandleFunc(routes.AdminPropertyPublish, ctrl.SetPublished).Methods(http.MethodPatch)
	router.HandleFunc(routes.AdminPropertyByID, ctrl.DeleteProperty).Methods(http.MethodDelete)
	router.HandleFunc(routes.AdminPropertyImages, ctrl.AddImage).Methods(http.MethodPost)
	router.HandleFunc(routes.AdminImageByID, ctrl.DeleteImage).Methods(http.MethodDelete)
	return router
}

func adminDo(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validUpsertBody() string {
	return `{
        "title": "Maison de bourg",
        "slug": "maison-de-bourg",
        "reference": "REF-001",
        "price": 185000,
        "type_id": "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa1111",
        "city": "Angers",
        "status": "available"
    }`
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestAdminCreateProperty(t *testing.T) {
	props := &stubAdminPropertyRepo{}
	router := newAdminRouter(props, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPost, "/api/v1/admin/properties", validUpsertBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, props.created)
	assert.Equal(t, "maison-de-bourg", props.created.Slug)
	assert.NotEqual(t, uuid.Nil, props.created.ID)
}

func TestAdminCreatePropertyValidationFailure(t *testing.T) {
	router := newAdminRouter(&stubAdminPropertyRepo{}, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPost, "/api/v1/admin/properties",
		`{"title": "Sans slug ni prix"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCreatePropertyDuplicateSlugIsConflict(t *testing.T) {
	props := &stubAdminPropertyRepo{
		writeErr: &pgconn.PgError{Code: pgUniqueViolation},
	}
	router := newAdminRouter(props, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPost, "/api/v1/admin/properties", validUpsertBody())

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, utils.ErrCodeConflict, decodeError(t, rec).Code)
}

func TestAdminUpdateMissingPropertyIs404(t *testing.T) {
	props := &stubAdminPropertyRepo{writeErr: pgx.ErrNoRows}
	router := newAdminRouter(props, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPut,
		"/api/v1/admin/properties/"+uuid.NewString(), validUpsertBody())

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminBadPathIDIs400(t *testing.T) {
	router := newAdminRouter(&stubAdminPropertyRepo{}, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodDelete, "/api/v1/admin/properties/pas-un-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSetPublished(t *testing.T) {
	router := newAdminRouter(&stubAdminPropertyRepo{}, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPatch,
		"/api/v1/admin/properties/"+uuid.NewString()+"/publish",
		`{"is_published": true}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminDeletePropertyIs204(t *testing.T) {
	router := newAdminRouter(&stubAdminPropertyRepo{}, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodDelete,
		"/api/v1/admin/properties/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminAddImage(t *testing.T) {
	images := &stubAdminImageRepo{}
	router := newAdminRouter(&stubAdminPropertyRepo{}, images)

	propertyID := uuid.New()
	rec := adminDo(t, router, http.MethodPost,
		"/api/v1/admin/properties/"+propertyID.String()+"/images",
		`{"url": "https://cdn.example.com/facade.jpg", "is_cover": true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, images.lastImg)
	assert.Equal(t, propertyID, images.lastImg.PropertyID)
	assert.True(t, images.lastImg.IsCover)
}

func TestAdminAddImageRejectsBadURL(t *testing.T) {
	router := newAdminRouter(&stubAdminPropertyRepo{}, &stubAdminImageRepo{})

	rec := adminDo(t, router, http.MethodPost,
		"/api/v1/admin/properties/"+uuid.NewString()+"/images",
		`{"url": "pas une url"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDeleteMissingImageIs404(t *testing.T) {
	images := &stubAdminImageRepo{writeErr: pgx.ErrNoRows}
	router := newAdminRouter(&stubAdminPropertyRepo{}, images)

	rec := adminDo(t, router, http.MethodDelete,
		"/api/v1/admin/images/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}
