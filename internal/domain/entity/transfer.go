package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatusDelivered es el único estado que produce este flujo: el
// traslado por canasta es una vía rápida auto-aprobada, sin etapa de
// aprobación separada.
const TransferStatusDelivered = "delivered"

// Transfer es el registro confirmado del movimiento de un activo (o una
// cantidad de él) desde un origen hacia un destino. Se crea uno por cada ítem
// de canasta completado.
type Transfer struct {
	ID        string
	CompanyID string
	BasketID  string
	AssetID   string
	AssetName string

	Type     string // warehouse | project | user, derivado del destino de la canasta
	Quantity decimal.Decimal

	SourceWarehouseID string
	DestWarehouseID   string
	DestProjectID     string
	DestUserID        string

	// Vía rápida auto-aprobada: solicitante y aprobador son el mismo usuario
	// y las tres marcas de tiempo se sellan al momento del commit.
	RequestedBy string
	ApprovedBy  string
	RequestedAt time.Time
	ApprovedAt  time.Time
	DeliveredAt time.Time

	Status string
	Notes  string

	CreatedAt time.Time
}
