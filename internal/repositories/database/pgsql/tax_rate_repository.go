package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

type PgxTaxRateRepository struct {
	BaseRepository
}

func newPgxTaxRateRepository(pool *pgxpool.Pool) portsrepo.TaxRateReader {
	return &PgxTaxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxRateReader = (*PgxTaxRateRepository)(nil)

func (r *PgxTaxRateRepository) FindTaxRatesByIDs(ctx context.Context, taxRateIDs []string) (map[string]domain.TaxRate, error) {
	rates := make(map[string]domain.TaxRate, len(taxRateIDs))
	if len(taxRateIDs) == 0 {
		return rates, nil
	}

	query := `
		SELECT tax_rate_id, name, rate
		FROM tax_rates
		WHERE tax_rate_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, taxRateIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax rates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr domain.TaxRate
		if err := rows.Scan(&tr.TaxRateID, &tr.Name, &tr.Rate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax rate", err)
		}
		rates[tr.TaxRateID] = tr
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading tax rates", err)
	}
	return rates, nil
}

func (r *PgxTaxRateRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	query := `
		SELECT tax_rate_id, name, rate
		FROM tax_rates
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list tax rates", err)
	}
	defer rows.Close()

	var rates []domain.TaxRate
	for rows.Next() {
		var tr domain.TaxRate
		if err := rows.Scan(&tr.TaxRateID, &tr.Name, &tr.Rate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax rate", err)
		}
		rates = append(rates, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading tax rates", err)
	}
	return rates, nil
}
