package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

// entityTables maps an entity kind to its backing tables. Invoices, purchase
// orders and credit notes share one schema shape across three table triples.
type entityTables struct {
	entities        string
	items           string
	approveRequests string
}

var tablesByKind = map[domain.EntityKind]entityTables{
	domain.KindInvoice:       {"invoices", "invoice_items", "invoice_approve_requests"},
	domain.KindPurchaseOrder: {"purchase_orders", "purchase_order_items", "purchase_order_approve_requests"},
	domain.KindCreditNote:    {"credit_notes", "credit_note_items", "credit_note_approve_requests"},
}

func tablesFor(kind domain.EntityKind) (entityTables, error) {
	t, ok := tablesByKind[kind]
	if !ok {
		return entityTables{}, apperrors.NewAppError(500, "unknown entity kind "+string(kind), apperrors.ErrInternal)
	}
	return t, nil
}

type PgxFinancialEntityRepository struct {
	BaseRepository
}

func newPgxFinancialEntityRepository(pool *pgxpool.Pool) portsrepo.FinancialEntityRepositoryFacade {
	return &PgxFinancialEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialEntityRepositoryFacade = (*PgxFinancialEntityRepository)(nil)

const entityColumns = `
	entity_id, location_id, accounting_organization_id, entity_date, status,
	reference, recipient_name, transaction_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxFinancialEntityRepository) FindEntityByID(ctx context.Context, kind domain.EntityKind, entityID string) (*domain.FinancialEntity, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE entity_id = $1 AND deleted_at IS NULL;
	`, entityColumns, tables.entities)

	var e domain.FinancialEntity
	err = r.Pool.QueryRow(ctx, query, entityID).Scan(
		&e.EntityID,
		&e.LocationID,
		&e.AccountingOrganizationID,
		&e.Date,
		&e.Status,
		&e.Reference,
		&e.RecipientName,
		&e.TransactionID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find "+string(kind)+" "+entityID, err)
	}
	e.Kind = kind

	e.Items, err = r.findItems(ctx, tables.items, entityID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxFinancialEntityRepository) findItems(ctx context.Context, itemsTable, entityID string) ([]domain.Item, error) {
	query := fmt.Sprintf(`
		SELECT item_id, entity_id, gl_account_id, tax_rate_id, description, unit_cost, quantity, discount
		FROM %s
		WHERE entity_id = $1
		ORDER BY item_id;
	`, itemsTable)

	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items of entity "+entityID, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ItemID, &it.EntityID, &it.GLAccountID, &it.TaxRateID, &it.Description, &it.UnitCost, &it.Quantity, &it.Discount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item of entity "+entityID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading items of entity "+entityID, err)
	}
	return items, nil
}

func (r *PgxFinancialEntityRepository) FindApproveRequests(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.ApproveRequest, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT approve_request_id, entity_id, requester_id, approver_id, approved_at, created_at
		FROM %s
		WHERE entity_id = $1
		ORDER BY created_at, approve_request_id;
	`, tables.approveRequests)

	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approve requests of "+string(kind)+" "+entityID, err)
	}
	defer rows.Close()

	var requests []domain.ApproveRequest
	for rows.Next() {
		var ar domain.ApproveRequest
		if err := rows.Scan(&ar.ApproveRequestID, &ar.EntityID, &ar.RequesterID, &ar.ApproverID, &ar.ApprovedAt, &ar.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approve request of "+string(kind)+" "+entityID, err)
		}
		ar.EntityKind = kind
		requests = append(requests, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading approve requests of "+string(kind)+" "+entityID, err)
	}
	return requests, nil
}

func (r *PgxFinancialEntityRepository) SaveEntity(ctx context.Context, entity domain.FinancialEntity) error {
	tables, err := tablesFor(entity.Kind)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertEntity := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`, tables.entities, entityColumns)

	_, err = tx.Exec(ctx, insertEntity,
		entity.EntityID,
		entity.LocationID,
		entity.AccountingOrganizationID,
		entity.Date,
		entity.Status,
		entity.Reference,
		entity.RecipientName,
		entity.TransactionID,
		entity.CreatedAt,
		entity.CreatedBy,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert "+string(entity.Kind)+" "+entity.EntityID, err)
	}

	if err := insertItems(ctx, tx, tables.items, entity.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFinancialEntityRepository) UpdateEntity(ctx context.Context, entity domain.FinancialEntity) error {
	tables, err := tablesFor(entity.Kind)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateEntity := fmt.Sprintf(`
		UPDATE %s
		SET entity_date = $2, reference = $3, recipient_name = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE entity_id = $1 AND deleted_at IS NULL;
	`, tables.entities)

	tag, err := tx.Exec(ctx, updateEntity,
		entity.EntityID,
		entity.Date,
		entity.Reference,
		entity.RecipientName,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update "+string(entity.Kind)+" "+entity.EntityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	deleteItems := fmt.Sprintf(`DELETE FROM %s WHERE entity_id = $1;`, tables.items)
	if _, err := tx.Exec(ctx, deleteItems, entity.EntityID); err != nil {
		return apperrors.NewAppError(500, "failed to clear items of "+string(entity.Kind)+" "+entity.EntityID, err)
	}
	if err := insertItems(ctx, tx, tables.items, entity.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertItems(ctx context.Context, tx pgx.Tx, itemsTable string, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	insertItem := fmt.Sprintf(`
		INSERT INTO %s (item_id, entity_id, gl_account_id, tax_rate_id, description, unit_cost, quantity, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, itemsTable)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(insertItem,
			it.ItemID,
			it.EntityID,
			it.GLAccountID,
			it.TaxRateID,
			it.Description,
			it.UnitCost,
			it.Quantity,
			it.Discount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert entity items", err)
		}
	}
	return results.Close()
}

func (r *PgxFinancialEntityRepository) UpdateEntityStatus(ctx context.Context, kind domain.EntityKind, entityID string, status domain.EntityStatus, transactionID *string, userID string, at time.Time) error {
	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, transaction_id = COALESCE($3, transaction_id),
		    last_updated_at = $4, last_updated_by = $5
		WHERE entity_id = $1 AND deleted_at IS NULL;
	`, tables.entities)

	tag, err := r.Pool.Exec(ctx, query, entityID, status, transactionID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of "+string(kind)+" "+entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFinancialEntityRepository) MarkEntityDeleted(ctx context.Context, kind domain.EntityKind, entityID string, userID string, at time.Time) error {
	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE entity_id = $1 AND deleted_at IS NULL;
	`, tables.entities)

	tag, err := r.Pool.Exec(ctx, query, entityID, domain.StatusDeleted, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete "+string(kind)+" "+entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFinancialEntityRepository) SaveApproveRequests(ctx context.Context, requests []domain.ApproveRequest) error {
	if len(requests) == 0 {
		return nil
	}
	tables, err := tablesFor(requests[0].EntityKind)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertRequest := fmt.Sprintf(`
		INSERT INTO %s (approve_request_id, entity_id, requester_id, approver_id, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, tables.approveRequests)

	batch := &pgx.Batch{}
	for _, ar := range requests {
		batch.Queue(insertRequest,
			ar.ApproveRequestID,
			ar.EntityID,
			ar.RequesterID,
			ar.ApproverID,
			ar.ApprovedAt,
			ar.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range requests {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert approve requests", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to flush approve request batch", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFinancialEntityRepository) MarkApproveRequestApproved(ctx context.Context, kind domain.EntityKind, entityID, approverID string, at time.Time) error {
	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET approved_at = $3
		WHERE entity_id = $1 AND approver_id = $2 AND approved_at IS NULL;
	`, tables.approveRequests)

	tag, err := r.Pool.Exec(ctx, query, entityID, approverID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark approve request of "+string(kind)+" "+entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
