package models

import "github.com/google/uuid"

type PropertyType struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `json:"display_order"`
}
