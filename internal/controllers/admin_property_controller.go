package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/models"
	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/utils"
)

const pgUniqueViolation = "23505"

// AdminPropertyController is the CMS surface behind the bearer-token
// guard. Unlike the public controller it talks to the repositories
// directly: an operator wants to see the failure, not an empty page.
type AdminPropertyController struct {
	properties repositories.PropertyRepository
	images     repositories.PropertyImageRepository
}

func NewAdminPropertyController(
	properties repositories.PropertyRepository,
	images repositories.PropertyImageRepository,
) *AdminPropertyController {
	return &AdminPropertyController{properties: properties, images: images}
}

// ----------------------------------------------------------------
// POST /api/v1/admin/properties
// ----------------------------------------------------------------
func (c *AdminPropertyController) CreateProperty(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePropertyUpsert(w, r)
	if !ok {
		return
	}

	p := propertyFromUpsert(req)
	p.ID = uuid.New()
	p.IsPublished = req.IsPublished

	if err := c.properties.Create(r.Context(), p); err != nil {
		if isUniqueViolation(err) {
			utils.RespondErrorWithCode(
				w, http.StatusConflict, utils.ErrCodeConflict, "Un bien avec ce slug ou cette référence existe déjà", nil, err,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec de la création du bien", nil, err,
		)
		return
	}

	created, err := c.properties.GetByID(r.Context(), p.ID)
	if err != nil || created == nil {
		// Row is in; echo what we have rather than failing the call.
		utils.RespondWithJSON(w, http.StatusCreated, p)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/properties/{id}
// ----------------------------------------------------------------
func (c *AdminPropertyController) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodePropertyUpsert(w, r)
	if !ok {
		return
	}

	p := propertyFromUpsert(req)
	p.ID = id

	if err := c.properties.Update(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Bien introuvable", nil,
			)
		case isUniqueViolation(err):
			utils.RespondErrorWithCode(
				w, http.StatusConflict, utils.ErrCodeConflict, "Un bien avec ce slug ou cette référence existe déjà", nil, err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec de la mise à jour du bien", nil, err,
			)
		}
		return
	}

	updated, err := c.properties.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		utils.RespondWithJSON(w, http.StatusOK, p)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// ----------------------------------------------------------------
// PATCH /api/v1/admin/properties/{id}/publish
// ----------------------------------------------------------------
func (c *AdminPropertyController) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	if err := c.properties.SetPublished(r.Context(), id, req.IsPublished); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Bien introuvable", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec du changement de publication", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.PublishRequest{IsPublished: req.IsPublished})
}

// ----------------------------------------------------------------
// DELETE /api/v1/admin/properties/{id}
// ----------------------------------------------------------------
func (c *AdminPropertyController) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.properties.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Bien introuvable", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec de la suppression du bien", nil, err,
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/admin/properties/{id}/images
// ----------------------------------------------------------------
func (c *AdminPropertyController) AddImage(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.PropertyImageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Certains champs sont invalides", fieldErrors(err), err,
		)
		return
	}

	img := &models.PropertyImage{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		URL:          req.URL,
		Alt:          req.Alt,
		IsCover:      req.IsCover,
		DisplayOrder: req.DisplayOrder,
	}
	if err := c.images.Create(r.Context(), img); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec de l'ajout de l'image", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, img)
}

// ----------------------------------------------------------------
// DELETE /api/v1/admin/images/{id}
// ----------------------------------------------------------------
func (c *AdminPropertyController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.images.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Image introuvable", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Échec de la suppression de l'image", nil, err,
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

/* ------------------------------------------------------------------
   helpers
------------------------------------------------------------------ */

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Identifiant invalide", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

func decodePropertyUpsert(w http.ResponseWriter, r *http.Request) (dtos.PropertyUpsertRequest, bool) {
	var req dtos.PropertyUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Certains champs sont invalides", fieldErrors(err), err,
		)
		return req, false
	}
	return req, true
}

func propertyFromUpsert(req dtos.PropertyUpsertRequest) *models.Property {
	features := req.Features
	if features == nil {
		features = []string{}
	}
	return &models.Property{
		Title:        req.Title,
		Slug:         req.Slug,
		Reference:    req.Reference,
		Description:  req.Description,
		Price:        req.Price,
		TypeID:       req.TypeID,
		Surface:      req.Surface,
		LandSurface:  req.LandSurface,
		Rooms:        req.Rooms,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Address:      req.Address,
		City:         req.City,
		PostalCode:   req.PostalCode,
		EnergyRating: req.EnergyRating,
		GESRating:    req.GESRating,
		YearBuilt:    req.YearBuilt,
		Features:     features,
		Status:       req.Status,
		IsFeatured:   req.IsFeatured,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
