package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// AssetAssignmentPatch describe la mutación de asignación de un activo al
// completar una canasta. Solo los campos no nulos se aplican.
type AssetAssignmentPatch struct {
	WarehouseID       *string
	AssignedUserID    *string
	AssignedProjectID *string
	AssignedAt        *time.Time
	Status            *string
}

// AssetRepository define el puerto hacia el directorio de activos (DIP).
// Las búsquedas por identificador son de coincidencia exacta; la prioridad
// QR > barras > código interno la aplica el resolutor, no el adaptador.
type AssetRepository interface {
	GetByQRCode(companyID, code string) (*entity.Asset, error)
	GetByBarcode(companyID, code string) (*entity.Asset, error)
	GetByAssetCode(companyID, code string) (*entity.Asset, error)
	GetByID(id string) (*entity.Asset, error)
	UpdateAssignment(id string, patch AssetAssignmentPatch) error
	// DecrementQuantity resta cantidad disponible de un consumible; el
	// adaptador nunca deja la cantidad por debajo de cero.
	DecrementQuantity(id string, amount decimal.Decimal) error
}
