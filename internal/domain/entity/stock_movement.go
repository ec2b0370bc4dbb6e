package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement es la entrada de libro mayor que registra el cambio de
// cantidad disponible de un activo consumible, atribuible a un traslado.
// La cantidad se guarda negativa (salida).
type StockMovement struct {
	ID          string
	CompanyID   string
	AssetID     string
	WarehouseID string // bodega de origen del movimiento
	TransferID  string // traslado que originó el movimiento
	BasketID    string
	Quantity    decimal.Decimal // negativa para salidas
	CreatedAt   time.Time
	CreatedBy   string
}
