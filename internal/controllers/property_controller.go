package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/fieldpolicy"
	"github.com/etude-leroux/site-api/internal/services"
	"github.com/etude-leroux/site-api/internal/utils"
)

// PropertyController serves the public read endpoints. The service layer
// already degrades data-store failures to empty results, so every
// handler here answers 200 (or 404 for a missing slug).
type PropertyController struct {
	svc services.PropertyService
}

func NewPropertyController(s services.PropertyService) *PropertyController {
	return &PropertyController{svc: s}
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter := dtos.ParsePropertyFilter(r.URL.Query())
	props := c.svc.ListPublished(r.Context(), filter)

	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertiesResponse{
		Properties: props,
		Count:      len(props),
	})
}

// ----------------------------------------------------------------
// GET /api/v1/properties/featured
// ----------------------------------------------------------------
func (c *PropertyController) ListFeatured(w http.ResponseWriter, r *http.Request) {
	props := c.svc.ListFeatured(r.Context())

	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertiesResponse{
		Properties: props,
		Count:      len(props),
	})
}

// ----------------------------------------------------------------
// GET /api/v1/properties/cities
// ----------------------------------------------------------------
func (c *PropertyController) ListCities(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.CitiesResponse{
		Cities: c.svc.ListCities(r.Context()),
	})
}

// ----------------------------------------------------------------
// GET /api/v1/properties/available
// ----------------------------------------------------------------
// The front end redirects the listing page to the home page when this
// reports false.
func (c *PropertyController) HasProperties(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.AvailableResponse{
		Available: c.svc.HasPublished(r.Context()),
	})
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{slug}
// ----------------------------------------------------------------
func (c *PropertyController) GetProperty(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	p := c.svc.GetBySlug(r.Context(), slug)
	if p == nil {
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Bien introuvable", nil,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// ----------------------------------------------------------------
// GET /api/v1/property-types
// ----------------------------------------------------------------
func (c *PropertyController) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := c.svc.ListTypes(r.Context())

	out := make([]dtos.PropertyTypeWithPolicy, 0, len(types))
	for _, t := range types {
		out = append(out, dtos.PropertyTypeWithPolicy{
			PropertyType: t,
			FieldPolicy:  fieldpolicy.ForType(t.Slug),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyTypesResponse{Types: out})
}
