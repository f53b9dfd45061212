// internal/repository/postgres/dollar_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
)

// DollarRateRepository implements repository.DollarRateRepository for PostgreSQL.
type DollarRateRepository struct{}

// NewDollarRateRepository creates a new DollarRateRepository.
func NewDollarRateRepository(db *sqlx.DB) repository.DollarRateRepository {
	return &DollarRateRepository{}
}

// GetDollarRate returns the stored baseline for a quote source, or nil when
// no baseline exists yet.
func (r *DollarRateRepository) GetDollarRate(ctx context.Context, q repository.DBExecutor, source string) (*domain.DollarRate, error) {
	var rate domain.DollarRate
	query := `SELECT nombre, ultima_venta FROM dollar_rate WHERE nombre = $1`
	err := q.GetContext(ctx, &rate, query, source)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dollar rate for '%s': %w", source, err)
	}
	return &rate, nil
}

// UpsertDollarRate stores or replaces the baseline for a quote source.
func (r *DollarRateRepository) UpsertDollarRate(ctx context.Context, q repository.DBExecutor, rate *domain.DollarRate) error {
	query := `INSERT INTO dollar_rate (nombre, ultima_venta)
              VALUES ($1, $2)
              ON CONFLICT (nombre) DO UPDATE SET ultima_venta = EXCLUDED.ultima_venta`
	if _, err := q.ExecContext(ctx, query, rate.Source, rate.LastSell); err != nil {
		return fmt.Errorf("failed to upsert dollar rate for '%s': %w", rate.Source, err)
	}
	return nil
}
