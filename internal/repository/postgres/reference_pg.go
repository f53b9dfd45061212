// internal/repository/postgres/reference_pg.go
package postgres

import (
	"context"
	"fmt"

	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
)

// ReferenceRepository implements repository.ReferenceRepository for PostgreSQL.
type ReferenceRepository struct{}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) repository.ReferenceRepository {
	return &ReferenceRepository{}
}

// ListCountries returns every country ordered by name.
func (r *ReferenceRepository) ListCountries(ctx context.Context, q repository.DBExecutor) ([]domain.Country, error) {
	countries := []domain.Country{}
	query := `SELECT id, nombre, iso2 FROM paises ORDER BY nombre`
	if err := q.SelectContext(ctx, &countries, query); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// ListProvinces returns every province ordered by name.
func (r *ReferenceRepository) ListProvinces(ctx context.Context, q repository.DBExecutor) ([]domain.Province, error) {
	provinces := []domain.Province{}
	query := `SELECT id, nombre, pais_id FROM provincias ORDER BY nombre`
	if err := q.SelectContext(ctx, &provinces, query); err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	return provinces, nil
}

// CountryExists reports whether a country id is present in the catalog.
func (r *ReferenceRepository) CountryExists(ctx context.Context, q repository.DBExecutor, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM paises WHERE id = $1)`
	if err := q.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check country existence: %w", err)
	}
	return exists, nil
}

// ProvinceExists reports whether a province id belongs to the country.
func (r *ReferenceRepository) ProvinceExists(ctx context.Context, q repository.DBExecutor, id, countryID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM provincias WHERE id = $1 AND pais_id = $2)`
	if err := q.GetContext(ctx, &exists, query, id, countryID); err != nil {
		return false, fmt.Errorf("failed to check province existence: %w", err)
	}
	return exists, nil
}
