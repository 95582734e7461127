// Package fieldpolicy declares which optional property attributes are
// relevant per property-type slug, so a listing for a bare plot does not
// render bedroom counts. The lookup is pure and total: any input,
// including an empty or unknown slug, resolves to the permissive default.
package fieldpolicy

// Policy is a fixed record of display-relevance flags for one property
// type. AllowedFeatures, when non-nil, restricts which feature tags
// should render; nil means no restriction.
type Policy struct {
	Surface         bool     `json:"surface"`
	LandSurface     bool     `json:"land_surface"`
	Rooms           bool     `json:"rooms"`
	Bedrooms        bool     `json:"bedrooms"`
	Bathrooms       bool     `json:"bathrooms"`
	EnergyRating    bool     `json:"energy_rating"`
	YearBuilt       bool     `json:"year_built"`
	AllowedFeatures []string `json:"allowed_features,omitempty"`
}

// defaultPolicy treats every attribute as relevant and restricts nothing.
var defaultPolicy = Policy{
	Surface:      true,
	LandSurface:  true,
	Rooms:        true,
	Bedrooms:     true,
	Bathrooms:    true,
	EnergyRating: true,
	YearBuilt:    true,
}

var policies = map[string]Policy{
	"maison": {
		Surface:      true,
		LandSurface:  true,
		Rooms:        true,
		Bedrooms:     true,
		Bathrooms:    true,
		EnergyRating: true,
		YearBuilt:    true,
	},
	"appartement": {
		Surface:      true,
		Rooms:        true,
		Bedrooms:     true,
		Bathrooms:    true,
		EnergyRating: true,
		YearBuilt:    true,
	},
	"terrain": {
		LandSurface: true,
		AllowedFeatures: []string{
			"viabilisé",
			"constructible",
			"clôturé",
			"arboré",
		},
	},
	"immeuble": {
		Surface:      true,
		LandSurface:  true,
		Rooms:        true,
		EnergyRating: true,
		YearBuilt:    true,
	},
	"local-commercial": {
		Surface:      true,
		EnergyRating: true,
		YearBuilt:    true,
	},
}

// ForType returns the display policy for a property-type slug. Unknown
// or empty slugs get the permissive default.
func ForType(slug string) Policy {
	if p, ok := policies[slug]; ok {
		return p
	}
	return defaultPolicy
}
