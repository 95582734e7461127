package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/etude-leroux/site-api/internal/models"
)

type PropertyTypeRepository interface {
	ListAll(ctx context.Context) ([]*models.PropertyType, error)
	GetBySlug(ctx context.Context, slug string) (*models.PropertyType, error)
}

type propertyTypeRepo struct {
	db DB
}

func NewPropertyTypeRepository(db DB) PropertyTypeRepository {
	return &propertyTypeRepo{db: db}
}

func (r *propertyTypeRepo) ListAll(ctx context.Context) ([]*models.PropertyType, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPropertyType()+` ORDER BY display_order, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyType
	for rows.Next() {
		t, err := scanPropertyType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *propertyTypeRepo) GetBySlug(ctx context.Context, slug string) (*models.PropertyType, error) {
	row := r.db.QueryRow(ctx, baseSelectPropertyType()+` WHERE slug=$1`, slug)
	t, err := scanPropertyType(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func baseSelectPropertyType() string {
	return `SELECT id, name, slug, icon, display_order FROM property_types`
}

func scanPropertyType(row pgx.Row) (*models.PropertyType, error) {
	var t models.PropertyType
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Icon, &t.DisplayOrder)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
