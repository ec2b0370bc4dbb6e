package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// ResolveRequest query params para GET /api/assets/resolve.
type ResolveRequest struct {
	Code        string          `query:"code" validate:"required,min=1,max=200"`
	Quantity    decimal.Decimal `query:"quantity"`
	WarehouseID string          `query:"warehouse_id" validate:"omitempty,uuid4"`
}

// AssetResponse salida de un activo del directorio.
type AssetResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	QRCode            string          `json:"qr_code,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	AssetCode         string          `json:"asset_code,omitempty"`
	IsConsumable      bool            `json:"is_consumable"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	QuantityReserved  decimal.Decimal `json:"quantity_reserved"`
	Status            string          `json:"status"`
	WarehouseID       string          `json:"warehouse_id,omitempty"`
	WarehouseName     string          `json:"warehouse_name,omitempty"`
	AssignedUserID    string          `json:"assigned_user_id,omitempty"`
	AssignedProjectID string          `json:"assigned_project_id,omitempty"`
	AssignedAt        *time.Time      `json:"assigned_at,omitempty"`
}

// ToAssetResponse mapea la entidad del directorio.
func ToAssetResponse(a *entity.Asset) *AssetResponse {
	if a == nil {
		return nil
	}
	return &AssetResponse{
		ID:                a.ID,
		Name:              a.Name,
		QRCode:            a.QRCode,
		Barcode:           a.Barcode,
		AssetCode:         a.AssetCode,
		IsConsumable:      a.IsConsumable,
		QuantityAvailable: a.QuantityAvailable,
		QuantityReserved:  a.QuantityReserved,
		Status:            a.Status,
		WarehouseID:       a.WarehouseID,
		WarehouseName:     a.WarehouseName,
		AssignedUserID:    a.AssignedUserID,
		AssignedProjectID: a.AssignedProjectID,
		AssignedAt:        a.AssignedAt,
	}
}
