package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/utils"
)

// Fixed IDs so reruns and environments agree on what each type is.
const (
	MaisonTypeID          = "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa1111"
	AppartementTypeID     = "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa2222"
	TerrainTypeID         = "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa3333"
	ImmeubleTypeID        = "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa4444"
	LocalCommercialTypeID = "7a1f06f2-93c4-4f3e-8d4a-0f51c2aa5555"
)

type seedType struct {
	id    string
	name  string
	slug  string
	icon  string
	order int
}

var defaultTypes = []seedType{
	{MaisonTypeID, "Maison", "maison", "home", 1},
	{AppartementTypeID, "Appartement", "appartement", "building", 2},
	{TerrainTypeID, "Terrain", "terrain", "map", 3},
	{ImmeubleTypeID, "Immeuble", "immeuble", "buildings", 4},
	{LocalCommercialTypeID, "Local commercial", "local-commercial", "store", 5},
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// EnsurePropertyTypes inserts any missing default property type. The
// set is closed (the field policy knows each slug), so seeding at
// startup keeps fresh databases usable without an admin step.
func EnsurePropertyTypes(db repositories.DB) error {
	ctx := context.Background()

	for _, t := range defaultTypes {
		_, err := db.Exec(ctx, `
            INSERT INTO property_types (id, name, slug, icon, display_order)
            VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (slug) DO NOTHING
        `, uuid.MustParse(t.id), t.name, t.slug, t.icon, t.order)
		if err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("seeding: property type %q already present; skipping", t.slug)
				continue
			}
			return fmt.Errorf("seed property type %q: %w", t.slug, err)
		}
	}

	utils.Logger.Info("seeding: property types ensured")
	return nil
}
