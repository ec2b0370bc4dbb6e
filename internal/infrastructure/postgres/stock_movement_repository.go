package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. Los inserts de una canasta van en un solo batch.
type StockMovementRepo struct {
	pool *pgxpool.Pool
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(pool *pgxpool.Pool) *StockMovementRepo {
	return &StockMovementRepo{pool: pool}
}

// CreateBatch inserta todos los movimientos acumulados en una sola ronda.
func (r *StockMovementRepo) CreateBatch(movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_movements (
			id, company_id, asset_id, warehouse_id, transfer_id, basket_id,
			quantity, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query,
			m.ID, m.CompanyID, m.AssetID, nullIfEmpty(m.WarehouseID), m.TransferID, m.BasketID,
			m.Quantity, m.CreatedAt, m.CreatedBy,
		)
	}
	results := r.pool.SendBatch(context.Background(), batch)
	defer results.Close()
	for range movements {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}
	}
	return nil
}

// ListByAsset lista los movimientos de un activo, más recientes primero.
func (r *StockMovementRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, asset_id, COALESCE(warehouse_id, ''), transfer_id, basket_id,
			quantity, created_at, created_by
		FROM stock_movements
		WHERE asset_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, assetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.AssetID, &m.WarehouseID, &m.TransferID, &m.BasketID,
			&m.Quantity, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
