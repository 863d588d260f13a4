package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `
	o.accounting_organization_id, o.name, o.lock_day_of_month, o.is_active,
	o.gl_account_receivable_id, o.gl_account_tax_payable_id, o.gl_account_accounts_payable_id,
	o.gl_account_payment_details_id, o.gl_account_franchise_payments_id,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
`

func scanOrganization(row pgx.Row) (domain.AccountingOrganization, error) {
	var o domain.AccountingOrganization
	err := row.Scan(
		&o.AccountingOrganizationID,
		&o.Name,
		&o.LockDayOfMonth,
		&o.IsActive,
		&o.GLAccountReceivableID,
		&o.GLAccountTaxPayableID,
		&o.GLAccountAccountsPayableID,
		&o.GLAccountPaymentDetailsID,
		&o.GLAccountFranchisePaymentsID,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	query := `
		INSERT INTO accounting_organizations (
			accounting_organization_id, name, lock_day_of_month, is_active,
			gl_account_receivable_id, gl_account_tax_payable_id, gl_account_accounts_payable_id,
			gl_account_payment_details_id, gl_account_franchise_payments_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		org.AccountingOrganizationID,
		org.Name,
		org.LockDayOfMonth,
		org.IsActive,
		org.GLAccountReceivableID,
		org.GLAccountTaxPayableID,
		org.GLAccountAccountsPayableID,
		org.GLAccountPaymentDetailsID,
		org.GLAccountFranchisePaymentsID,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert organization "+org.AccountingOrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM accounting_organizations o
		WHERE o.accounting_organization_id = $1;
	`
	org, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization "+organizationID, err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) FindActiveOrganizationByLocation(ctx context.Context, locationID string) (*domain.AccountingOrganization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM accounting_organizations o
		JOIN organization_locations ol ON ol.accounting_organization_id = o.accounting_organization_id
		WHERE ol.location_id = $1 AND ol.is_active;
	`
	org, err := scanOrganization(r.Pool.QueryRow(ctx, query, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active organization for location "+locationID, err)
	}
	return &org, nil
}

// AttachOrganizationToLocation deactivates the location's current attachment
// (if any) and inserts the new active link, all in one database transaction.
func (r *PgxOrganizationRepository) AttachOrganizationToLocation(ctx context.Context, organizationID, locationID, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deactivateLinks := `
		UPDATE organization_locations
		SET is_active = FALSE
		WHERE location_id = $1 AND is_active;
	`
	if _, err := tx.Exec(ctx, deactivateLinks, locationID); err != nil {
		return apperrors.NewAppError(500, "failed to deactivate previous organization link for location "+locationID, err)
	}

	deactivateOrgs := `
		UPDATE accounting_organizations o
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE o.accounting_organization_id <> $4
		  AND o.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM organization_locations ol
			WHERE ol.accounting_organization_id = o.accounting_organization_id AND ol.is_active
		  )
		  AND EXISTS (
			SELECT 1 FROM organization_locations ol
			WHERE ol.accounting_organization_id = o.accounting_organization_id AND ol.location_id = $1
		  );
	`
	if _, err := tx.Exec(ctx, deactivateOrgs, locationID, at, userID, organizationID); err != nil {
		return apperrors.NewAppError(500, "failed to deactivate previous organization for location "+locationID, err)
	}

	insertLink := `
		INSERT INTO organization_locations (accounting_organization_id, location_id, is_active, created_at, created_by)
		VALUES ($1, $2, TRUE, $3, $4);
	`
	if _, err := tx.Exec(ctx, insertLink, organizationID, locationID, at, userID); err != nil {
		return apperrors.NewAppError(500, "failed to link organization "+organizationID+" to location "+locationID, err)
	}

	activateOrg := `
		UPDATE accounting_organizations
		SET is_active = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE accounting_organization_id = $1;
	`
	if _, err := tx.Exec(ctx, activateOrg, organizationID, at, userID); err != nil {
		return apperrors.NewAppError(500, "failed to activate organization "+organizationID, err)
	}

	return r.Commit(ctx, tx)
}
