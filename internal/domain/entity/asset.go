package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un activo en el directorio.
const (
	AssetStatusAvailable   = "available"   // disponible para traslados
	AssetStatusInUse       = "in_use"      // asignado a un usuario o proyecto
	AssetStatusMaintenance = "maintenance" // en mantenimiento
	AssetStatusRetired     = "retired"     // dado de baja
)

// Asset representa un activo físico del directorio (referenciado, no poseído
// por el núcleo de canastas). Es resoluble por tres identificadores alternos:
// código QR, código de barras y código interno de activo.
type Asset struct {
	ID        string
	CompanyID string
	Name      string

	// Identificadores alternos de escaneo. La resolución prueba QR, luego
	// barras, luego código interno; gana la primera coincidencia exacta.
	QRCode    string
	Barcode   string
	AssetCode string

	// IsConsumable distingue activos por cantidad (material a granel) de
	// activos serializados/únicos.
	IsConsumable      bool
	QuantityAvailable decimal.Decimal
	QuantityReserved  decimal.Decimal

	Status string

	WarehouseID   string
	WarehouseName string // resuelto por join con warehouses, solo lectura

	AssignedUserID    string
	AssignedProjectID string
	AssignedAt        *time.Time

	Value decimal.Decimal // valor unitario, opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available calcula la disponibilidad real: para consumibles es
// disponible − reservado; para serializados es 1 si no hay reserva, 0 si la hay.
func (a *Asset) Available() decimal.Decimal {
	if a.IsConsumable {
		return a.QuantityAvailable.Sub(a.QuantityReserved)
	}
	if a.QuantityReserved.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(1)
}
