package services

import (
	"context"

	"github.com/etude-leroux/site-api/internal/models"
	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/utils"
)

// PropertyService is the public read surface. Repository failures are
// logged and mapped to empty defaults here, so a degraded data store
// still yields a renderable page. Callers must treat "empty" as
// ambiguous between no data and data store unreachable.
type PropertyService interface {
	ListPublished(ctx context.Context, f repositories.PropertyFilter) []*models.Property
	ListFeatured(ctx context.Context) []*models.Property
	HasPublished(ctx context.Context) bool
	ListCities(ctx context.Context) []string
	GetBySlug(ctx context.Context, slug string) *models.Property
	ListTypes(ctx context.Context) []*models.PropertyType
}

type propertyService struct {
	properties repositories.PropertyRepository
	types      repositories.PropertyTypeRepository
}

func NewPropertyService(
	properties repositories.PropertyRepository,
	types repositories.PropertyTypeRepository,
) PropertyService {
	return &propertyService{properties: properties, types: types}
}

func (s *propertyService) ListPublished(ctx context.Context, f repositories.PropertyFilter) []*models.Property {
	props, err := s.properties.ListPublished(ctx, f)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list published properties")
		return []*models.Property{}
	}
	if props == nil {
		props = []*models.Property{}
	}
	return props
}

func (s *propertyService) ListFeatured(ctx context.Context) []*models.Property {
	props, err := s.properties.ListFeatured(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list featured properties")
		return []*models.Property{}
	}
	if props == nil {
		props = []*models.Property{}
	}
	return props
}

func (s *propertyService) HasPublished(ctx context.Context) bool {
	exists, err := s.properties.HasPublished(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to check for published properties")
		return false
	}
	return exists
}

func (s *propertyService) ListCities(ctx context.Context) []string {
	cities, err := s.properties.ListCities(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list property cities")
		return []string{}
	}
	if cities == nil {
		cities = []string{}
	}
	return cities
}

func (s *propertyService) GetBySlug(ctx context.Context, slug string) *models.Property {
	p, err := s.properties.GetPublishedBySlug(ctx, slug)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to fetch property %q", slug)
		return nil
	}
	return p
}

func (s *propertyService) ListTypes(ctx context.Context) []*models.PropertyType {
	types, err := s.types.ListAll(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list property types")
		return []*models.PropertyType{}
	}
	if types == nil {
		types = []*models.PropertyType{}
	}
	return types
}
