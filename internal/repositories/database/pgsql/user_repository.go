package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT u.user_id, u.name,
		       u.invoice_approve_limit, u.purchase_order_approve_limit, u.credit_note_approve_limit,
		       COALESCE(array_agg(ul.location_id) FILTER (WHERE ul.location_id IS NOT NULL), '{}'),
		       u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
		FROM users u
		LEFT JOIN user_locations ul ON ul.user_id = u.user_id
		WHERE u.user_id = $1
		GROUP BY u.user_id;
	`

	var u domain.User
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&u.UserID,
		&u.Name,
		&u.InvoiceApproveLimit,
		&u.PurchaseOrderApproveLimit,
		&u.CreditNoteApproveLimit,
		&u.LocationIDs,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertUser := `
		INSERT INTO users (
			user_id, name,
			invoice_approve_limit, purchase_order_approve_limit, credit_note_approve_limit,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertUser,
		user.UserID,
		user.Name,
		user.InvoiceApproveLimit,
		user.PurchaseOrderApproveLimit,
		user.CreditNoteApproveLimit,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert user "+user.UserID, err)
	}

	if len(user.LocationIDs) > 0 {
		insertLocation := `INSERT INTO user_locations (user_id, location_id) VALUES ($1, $2);`
		batch := &pgx.Batch{}
		for _, locationID := range user.LocationIDs {
			batch.Queue(insertLocation, user.UserID, locationID)
		}
		results := tx.SendBatch(ctx, batch)
		for range user.LocationIDs {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return apperrors.NewAppError(500, "failed to insert locations of user "+user.UserID, err)
			}
		}
		if err := results.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to flush user location batch", err)
		}
	}

	return r.Commit(ctx, tx)
}
