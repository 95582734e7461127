package dtos

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/etude-leroux/site-api/internal/fieldpolicy"
	"github.com/etude-leroux/site-api/internal/models"
	"github.com/etude-leroux/site-api/internal/repositories"
)

// ParsePropertyFilter reads the public listing query string. A numeric
// filter that is present but unparseable is treated as absent rather
// than failing the request.
func ParsePropertyFilter(q url.Values) repositories.PropertyFilter {
	f := repositories.PropertyFilter{
		TypeSlug: q.Get("type"),
		City:     q.Get("ville"),
	}

	f.MinPrice = parseOptionalInt(q.Get("prix_min"))
	f.MaxPrice = parseOptionalInt(q.Get("prix_max"))
	f.MinSurface = parseOptionalInt(q.Get("surface_min"))

	if q.Get("featured") == "true" {
		f.FeaturedOnly = true
	}
	if limit := parseOptionalInt(q.Get("limit")); limit != nil && *limit > 0 {
		f.Limit = *limit
	}
	return f
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

type PropertiesResponse struct {
	Properties []*models.Property `json:"properties"`
	Count      int                `json:"count"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

type AvailableResponse struct {
	Available bool `json:"available"`
}

// PropertyTypeWithPolicy pairs a type with its display policy so the
// front end knows which attributes to render.
type PropertyTypeWithPolicy struct {
	*models.PropertyType
	FieldPolicy fieldpolicy.Policy `json:"field_policy"`
}

type PropertyTypesResponse struct {
	Types []PropertyTypeWithPolicy `json:"types"`
}

/* ------------------------------------------------------------------
   Admin payloads
------------------------------------------------------------------ */

type PropertyUpsertRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Slug        string    `json:"slug" validate:"required,min=1,max=200"`
	Reference   string    `json:"reference" validate:"required,max=50"`
	Description string    `json:"description" validate:"max=10000"`
	Price       int       `json:"price" validate:"required,gt=0"`
	TypeID      uuid.UUID `json:"type_id" validate:"required"`

	Surface     *int `json:"surface" validate:"omitempty,gt=0"`
	LandSurface *int `json:"land_surface" validate:"omitempty,gt=0"`
	Rooms       *int `json:"rooms" validate:"omitempty,gt=0"`
	Bedrooms    *int `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int `json:"bathrooms" validate:"omitempty,gte=0"`

	Address    string `json:"address" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"max=10"`

	EnergyRating *string `json:"energy_rating" validate:"omitempty,oneof=A B C D E F G"`
	GESRating    *string `json:"ges_rating" validate:"omitempty,oneof=A B C D E F G"`
	YearBuilt    *int    `json:"year_built" validate:"omitempty,gte=1500,lte=2100"`

	Features []string `json:"features" validate:"dive,max=100"`

	Status      string `json:"status" validate:"required,oneof=available under_offer sold"`
	IsPublished bool   `json:"is_published"`
	IsFeatured  bool   `json:"is_featured"`
}

type PublishRequest struct {
	IsPublished bool `json:"is_published"`
}

type PropertyImageCreateRequest struct {
	URL          string  `json:"url" validate:"required,url,max=500"`
	Alt          *string `json:"alt" validate:"omitempty,max=255"`
	IsCover      bool    `json:"is_cover"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}
