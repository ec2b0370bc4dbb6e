package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
// El libro mayor es de solo inserción; los traslados nunca se actualizan.
type TransferRepo struct {
	pool *pgxpool.Pool
}

// NewTransferRepository construye el adaptador hacia el libro mayor de traslados.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepo {
	return &TransferRepo{pool: pool}
}

const transferColumns = `
	id, company_id, basket_id, asset_id, asset_name, type, quantity,
	source_warehouse_id, dest_warehouse_id, dest_project_id, dest_user_id,
	requested_by, approved_by, requested_at, approved_at, delivered_at,
	status, notes, created_at`

// Create inserta un traslado confirmado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (
			id, company_id, basket_id, asset_id, asset_name, type, quantity,
			source_warehouse_id, dest_warehouse_id, dest_project_id, dest_user_id,
			requested_by, approved_by, requested_at, approved_at, delivered_at,
			status, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.pool.Exec(context.Background(), query,
		t.ID, t.CompanyID, t.BasketID, t.AssetID, t.AssetName, t.Type, t.Quantity,
		nullIfEmpty(t.SourceWarehouseID), nullIfEmpty(t.DestWarehouseID),
		nullIfEmpty(t.DestProjectID), nullIfEmpty(t.DestUserID),
		t.RequestedBy, t.ApprovedBy, t.RequestedAt, t.ApprovedAt, t.DeliveredAt,
		t.Status, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := fmt.Sprintf(`SELECT %s FROM transfers WHERE id = $1`, transferColumns)
	row := r.pool.QueryRow(context.Background(), query, id)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// ListByBasket lista los traslados de una canasta en orden de creación.
func (r *TransferRepo) ListByBasket(basketID string) ([]*entity.Transfer, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transfers
		WHERE basket_id = $1 ORDER BY created_at`, transferColumns)
	rows, err := r.pool.Query(context.Background(), query, basketID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by basket: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

// ListByCompany lista traslados de la empresa, más recientes primero.
func (r *TransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Transfer, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transfers
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, transferColumns)
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

func collectTransfers(rows pgx.Rows) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var sourceWH, destWH, destProject, destUser *string
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.BasketID, &t.AssetID, &t.AssetName, &t.Type, &t.Quantity,
		&sourceWH, &destWH, &destProject, &destUser,
		&t.RequestedBy, &t.ApprovedBy, &t.RequestedAt, &t.ApprovedAt, &t.DeliveredAt,
		&t.Status, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.SourceWarehouseID = deref(sourceWH)
	t.DestWarehouseID = deref(destWH)
	t.DestProjectID = deref(destProject)
	t.DestUserID = deref(destUser)
	return &t, nil
}
