// internal/repository/dollar_repo.go
package repository

import (
	"context"

	"cyberwallet-api/internal/domain"
)

// DollarRateRepository defines the interface for the persisted dollar quote
// baseline used to compute the change direction between refreshes.
type DollarRateRepository interface {
	// GetDollarRate returns the stored baseline for a quote source, or nil
	// when no baseline has been recorded yet.
	GetDollarRate(ctx context.Context, q DBExecutor, source string) (*domain.DollarRate, error)
	// UpsertDollarRate stores or replaces the baseline for a quote source.
	UpsertDollarRate(ctx context.Context, q DBExecutor, rate *domain.DollarRate) error
}
