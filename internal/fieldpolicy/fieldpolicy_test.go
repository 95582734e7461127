package fieldpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTypeIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"maison",
		"appartement",
		"terrain",
		"immeuble",
		"local-commercial",
		"chateau",  // unknown
		"MAISON",   // case-sensitive, resolves to default
		"maison ",  // trailing space, resolves to default
		"n'importe quoi",
	}

	for _, slug := range inputs {
		t.Run("slug "+slug, func(t *testing.T) {
			assert.NotPanics(t, func() {
				ForType(slug)
			})
		})
	}
}

func TestForTypeUnknownSlugGetsPermissiveDefault(t *testing.T) {
	for _, slug := range []string{"", "villa", "péniche"} {
		p := ForType(slug)
		assert.True(t, p.Surface, slug)
		assert.True(t, p.LandSurface, slug)
		assert.True(t, p.Rooms, slug)
		assert.True(t, p.Bedrooms, slug)
		assert.True(t, p.Bathrooms, slug)
		assert.True(t, p.EnergyRating, slug)
		assert.True(t, p.YearBuilt, slug)
		assert.Nil(t, p.AllowedFeatures, slug)
	}
}

func TestForTypeTerrain(t *testing.T) {
	p := ForType("terrain")

	assert.True(t, p.LandSurface)
	assert.False(t, p.Surface)
	assert.False(t, p.Rooms)
	assert.False(t, p.Bedrooms)
	assert.False(t, p.Bathrooms)
	assert.False(t, p.EnergyRating)
	assert.False(t, p.YearBuilt)

	require.NotNil(t, p.AllowedFeatures)
	assert.Contains(t, p.AllowedFeatures, "constructible")
}

func TestForTypeAppartementHasNoLandSurface(t *testing.T) {
	p := ForType("appartement")

	assert.True(t, p.Surface)
	assert.True(t, p.Bedrooms)
	assert.False(t, p.LandSurface)
	assert.Nil(t, p.AllowedFeatures)
}
