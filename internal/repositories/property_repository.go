package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/etude-leroux/site-api/internal/models"
)

// FeaturedCap bounds the homepage strip.
const FeaturedCap = 3

// PropertyFilter narrows ListPublished. Zero values mean "no constraint
// on that dimension"; all supplied filters combine with AND.
type PropertyFilter struct {
	TypeSlug     string
	City         string
	MinPrice     *int
	MaxPrice     *int
	MinSurface   *int
	FeaturedOnly bool
	Limit        int
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	ListPublished(ctx context.Context, f PropertyFilter) ([]*models.Property, error)
	ListFeatured(ctx context.Context) ([]*models.Property, error)
	HasPublished(ctx context.Context) (bool, error)
	ListCities(ctx context.Context) ([]string, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Property, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Create(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db     DB
	images PropertyImageRepository
}

func NewPropertyRepository(db DB, images PropertyImageRepository) PropertyRepository {
	return &propertyRepo{db: db, images: images}
}

func (r *propertyRepo) ListPublished(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	sql, args := buildListQuery(f)
	return r.queryProperties(ctx, sql, args...)
}

func (r *propertyRepo) ListFeatured(ctx context.Context) ([]*models.Property, error) {
	return r.ListPublished(ctx, PropertyFilter{FeaturedOnly: true, Limit: FeaturedCap})
}

func (r *propertyRepo) HasPublished(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE is_published = TRUE)`,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *propertyRepo) ListCities(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        SELECT DISTINCT city FROM properties
        WHERE is_published = TRUE AND city <> ''
        ORDER BY city
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		out = append(out, city)
	}
	return out, rows.Err()
}

func (r *propertyRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+` WHERE p.is_published = TRUE AND p.slug = $1`, slug)
	p, err := scanProperty(row)
	if err != nil || p == nil {
		return nil, err
	}
	if err := r.attachImages(ctx, []*models.Property{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+` WHERE p.id = $1`, id)
	p, err := scanProperty(row)
	if err != nil || p == nil {
		return nil, err
	}
	if err := r.attachImages(ctx, []*models.Property{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, title, slug, reference, description, price, type_id,
            surface, land_surface, rooms, bedrooms, bathrooms,
            address, city, postal_code,
            energy_rating, ges_rating, year_built, features,
            status, is_published, is_featured,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,
            NOW(), NOW()
        )
    `,
		p.ID,
		p.Title,
		p.Slug,
		p.Reference,
		p.Description,
		p.Price,
		p.TypeID,
		p.Surface,
		p.LandSurface,
		p.Rooms,
		p.Bedrooms,
		p.Bathrooms,
		p.Address,
		p.City,
		p.PostalCode,
		p.EnergyRating,
		p.GESRating,
		p.YearBuilt,
		p.Features,
		p.Status,
		p.IsPublished,
		p.IsFeatured,
	)
	return err
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET
            title=$1, slug=$2, reference=$3, description=$4, price=$5, type_id=$6,
            surface=$7, land_surface=$8, rooms=$9, bedrooms=$10, bathrooms=$11,
            address=$12, city=$13, postal_code=$14,
            energy_rating=$15, ges_rating=$16, year_built=$17, features=$18,
            status=$19, is_featured=$20,
            updated_at=NOW()
        WHERE id=$21
    `,
		p.Title, p.Slug, p.Reference, p.Description, p.Price, p.TypeID,
		p.Surface, p.LandSurface, p.Rooms, p.Bedrooms, p.Bathrooms,
		p.Address, p.City, p.PostalCode,
		p.EnergyRating, p.GESRating, p.YearBuilt, p.Features,
		p.Status, p.IsFeatured,
		p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET is_published=$1, updated_at=NOW() WHERE id=$2`,
		published, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

func (r *propertyRepo) queryProperties(ctx context.Context, sql string, args ...interface{}) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachImages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *propertyRepo) attachImages(ctx context.Context, props []*models.Property) error {
	if len(props) == 0 {
		return nil
	}

	ids := make([]string, 0, len(props))
	byID := make(map[uuid.UUID]*models.Property, len(props))
	for _, p := range props {
		ids = append(ids, p.ID.String())
		byID[p.ID] = p
		p.Images = []models.PropertyImage{}
	}

	images, err := r.images.ListByPropertyIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, img := range images {
		if p, ok := byID[img.PropertyID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return nil
}

// buildListQuery turns a PropertyFilter into the SELECT that feeds the
// public listing page. is_published is always enforced here so no filter
// combination can leak a draft.
func buildListQuery(f PropertyFilter) (string, []interface{}) {
	var (
		conds = []string{"p.is_published = TRUE"}
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.TypeSlug != "" {
		conds = append(conds, "t.slug = "+arg(f.TypeSlug))
	}
	if f.City != "" {
		conds = append(conds, "p.city = "+arg(f.City))
	}
	if f.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*f.MaxPrice))
	}
	if f.MinSurface != nil {
		conds = append(conds, "p.surface >= "+arg(*f.MinSurface))
	}
	if f.FeaturedOnly {
		conds = append(conds, "p.is_featured = TRUE")
	}

	sql := baseSelectProperty() +
		" WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY p.created_at DESC"

	if f.Limit > 0 {
		sql += " LIMIT " + arg(f.Limit)
	}
	return sql, args
}

func baseSelectProperty() string {
	return `
        SELECT
            p.id, p.title, p.slug, p.reference, p.description, p.price, p.type_id,
            p.surface, p.land_surface, p.rooms, p.bedrooms, p.bathrooms,
            p.address, p.city, p.postal_code,
            p.energy_rating, p.ges_rating, p.year_built, p.features,
            p.status, p.is_published, p.is_featured,
            p.created_at, p.updated_at,
            t.id, t.name, t.slug, t.icon, t.display_order
        FROM properties p
        JOIN property_types t ON t.id = p.type_id
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p models.Property
		t models.PropertyType
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Reference,
		&p.Description,
		&p.Price,
		&p.TypeID,
		&p.Surface,
		&p.LandSurface,
		&p.Rooms,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Address,
		&p.City,
		&p.PostalCode,
		&p.EnergyRating,
		&p.GESRating,
		&p.YearBuilt,
		&p.Features,
		&p.Status,
		&p.IsPublished,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Icon,
		&t.DisplayOrder,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.Type = &t
	return &p, nil
}
