package repository

import "github.com/tu-usuario/activos-pro/internal/domain/entity"

// StockMovementRepository define el puerto hacia el libro mayor de movimientos
// de stock. CreateBatch inserta todos los movimientos acumulados de una
// canasta en una sola operación.
type StockMovementRepository interface {
	CreateBatch(movements []*entity.StockMovement) error
	ListByAsset(assetID string, limit, offset int) ([]*entity.StockMovement, error)
}
