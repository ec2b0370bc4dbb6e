package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// TransferResponse salida de un traslado del libro mayor.
type TransferResponse struct {
	ID                string          `json:"id"`
	BasketID          string          `json:"basket_id"`
	AssetID           string          `json:"asset_id"`
	AssetName         string          `json:"asset_name"`
	Type              string          `json:"type"`
	Quantity          decimal.Decimal `json:"quantity"`
	SourceWarehouseID string          `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string          `json:"dest_warehouse_id,omitempty"`
	DestProjectID     string          `json:"dest_project_id,omitempty"`
	DestUserID        string          `json:"dest_user_id,omitempty"`
	RequestedBy       string          `json:"requested_by"`
	ApprovedBy        string          `json:"approved_by"`
	Status            string          `json:"status"`
	DeliveredAt       time.Time       `json:"delivered_at"`
	Notes             string          `json:"notes,omitempty"`
}

// TransferListResponse lista de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToTransferResponse mapea la entidad del libro mayor.
func ToTransferResponse(t *entity.Transfer) *TransferResponse {
	if t == nil {
		return nil
	}
	return &TransferResponse{
		ID:                t.ID,
		BasketID:          t.BasketID,
		AssetID:           t.AssetID,
		AssetName:         t.AssetName,
		Type:              t.Type,
		Quantity:          t.Quantity,
		SourceWarehouseID: t.SourceWarehouseID,
		DestWarehouseID:   t.DestWarehouseID,
		DestProjectID:     t.DestProjectID,
		DestUserID:        t.DestUserID,
		RequestedBy:       t.RequestedBy,
		ApprovedBy:        t.ApprovedBy,
		Status:            t.Status,
		DeliveredAt:       t.DeliveredAt,
		Notes:             t.Notes,
	}
}
