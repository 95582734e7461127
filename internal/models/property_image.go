package models

import "github.com/google/uuid"

type PropertyImage struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	URL          string    `json:"url"`
	Alt          *string   `json:"alt,omitempty"`
	IsCover      bool      `json:"is_cover"`
	DisplayOrder int       `json:"display_order"`
}
