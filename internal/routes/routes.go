package routes

const (
	// Health
	Health = "/health"

	// Public read endpoints
	Properties         = "/api/v1/properties"
	PropertiesFeatured = "/api/v1/properties/featured"
	PropertiesCities   = "/api/v1/properties/cities"
	PropertiesExist    = "/api/v1/properties/available"
	PropertyBySlug     = "/api/v1/properties/{slug}"
	PropertyTypes      = "/api/v1/property-types"

	// Contact form (path kept stable for the existing front end)
	Contact = "/api/contact"

	// Admin CMS endpoints
	AdminProperties      = "/api/v1/admin/properties"
	AdminPropertyByID    = "/api/v1/admin/properties/{id}"
	AdminPropertyPublish = "/api/v1/admin/properties/{id}/publish"
	AdminPropertyImages  = "/api/v1/admin/properties/{id}/images"
	AdminImageByID       = "/api/v1/admin/images/{id}"
)
