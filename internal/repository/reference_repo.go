// internal/repository/reference_repo.go
package repository

import (
	"context"

	"cyberwallet-api/internal/domain"
)

// ReferenceRepository defines the interface for country and province catalogs.
type ReferenceRepository interface {
	// ListCountries returns every country ordered by name.
	ListCountries(ctx context.Context, q DBExecutor) ([]domain.Country, error)
	// ListProvinces returns every province ordered by name.
	ListProvinces(ctx context.Context, q DBExecutor) ([]domain.Province, error)
	// CountryExists reports whether a country id is present in the catalog.
	CountryExists(ctx context.Context, q DBExecutor, id int64) (bool, error)
	// ProvinceExists reports whether a province id belongs to the country.
	ProvinceExists(ctx context.Context, q DBExecutor, id, countryID int64) (bool, error)
}
