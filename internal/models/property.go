package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing lifecycle. Independent from IsPublished: an unpublished
// property is invisible to the public site whatever its status.
const (
	StatusAvailable  = "available"
	StatusUnderOffer = "under_offer"
	StatusSold       = "sold"
)

// Energy / GES ratings are "A".."G"; nil means not specified.

type Property struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`

	// Whole euros.
	Price int `json:"price"`

	TypeID uuid.UUID     `json:"type_id"`
	Type   *PropertyType `json:"type,omitempty"`

	Surface     *int `json:"surface,omitempty"`
	LandSurface *int `json:"land_surface,omitempty"`
	Rooms       *int `json:"rooms,omitempty"`
	Bedrooms    *int `json:"bedrooms,omitempty"`
	Bathrooms   *int `json:"bathrooms,omitempty"`

	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`

	EnergyRating *string `json:"energy_rating,omitempty"`
	GESRating    *string `json:"ges_rating,omitempty"`
	YearBuilt    *int    `json:"year_built,omitempty"`

	Features []string `json:"features"`

	Status      string `json:"status"`
	IsPublished bool   `json:"is_published"`
	IsFeatured  bool   `json:"is_featured"`

	Images []PropertyImage `json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoverImage picks the image to lead with: first image flagged as cover,
// else the first image in display order. Images are expected to already
// be sorted by display order.
func (p *Property) CoverImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
