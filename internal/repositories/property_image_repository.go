package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/etude-leroux/site-api/internal/models"
)

type PropertyImageRepository interface {
	// ListByPropertyIDs returns the images of every listed property,
	// sorted by display order within each property.
	ListByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyImage, error)

	Create(ctx context.Context, img *models.PropertyImage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyImageRepo struct {
	db DB
}

func NewPropertyImageRepository(db DB) PropertyImageRepository {
	return &propertyImageRepo{db: db}
}

func (r *propertyImageRepo) ListByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyImage, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, property_id, url, alt, is_cover, display_order
        FROM property_images
        WHERE property_id = ANY($1::uuid[])
        ORDER BY property_id, display_order
    `, propertyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PropertyImage
	for rows.Next() {
		img, err := scanPropertyImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *propertyImageRepo) Create(ctx context.Context, img *models.PropertyImage) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_images (id, property_id, url, alt, is_cover, display_order)
        VALUES ($1,$2,$3,$4,$5,$6)
    `,
		img.ID,
		img.PropertyID,
		img.URL,
		img.Alt,
		img.IsCover,
		img.DisplayOrder,
	)
	return err
}

func (r *propertyImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM property_images WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPropertyImage(row pgx.Row) (models.PropertyImage, error) {
	var img models.PropertyImage
	err := row.Scan(
		&img.ID,
		&img.PropertyID,
		&img.URL,
		&img.Alt,
		&img.IsCover,
		&img.DisplayOrder,
	)
	return img, err
}
