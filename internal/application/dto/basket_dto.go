package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// CreateBasketRequest body para POST /api/baskets.
// Los destinos son mutuamente excluyentes; a lo sumo uno.
type CreateBasketRequest struct {
	SourceWarehouseID string `json:"source_warehouse_id" validate:"omitempty,uuid4"`
	DestWarehouseID   string `json:"dest_warehouse_id" validate:"omitempty,uuid4"`
	DestProjectID     string `json:"dest_project_id" validate:"omitempty,uuid4"`
	DestUserID        string `json:"dest_user_id" validate:"omitempty,uuid4"`
	Notes             string `json:"notes" validate:"max=2000"`
}

// AddItemRequest body para POST /api/baskets/:id/items (un escaneo).
type AddItemRequest struct {
	ScanCode string          `json:"scan_code" validate:"required,min=1,max=200"`
	Quantity decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest body para PUT /api/baskets/:id/items/:assetId.
type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CompleteBasketRequest body para POST /api/baskets/:id/complete.
type CompleteBasketRequest struct {
	Notes          string   `json:"notes" validate:"max=2000"`
	CheckOutPhotos []string `json:"check_out_photos" validate:"omitempty,max=20"`
}

// BasketItemDTO un ítem escaneado dentro de la canasta.
type BasketItemDTO struct {
	AssetID       string          `json:"asset_id"`
	AssetName     string          `json:"asset_name"`
	ScanCode      string          `json:"scan_code"`
	WarehouseName string          `json:"warehouse_name"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	Quantity      decimal.Decimal `json:"quantity"`
	Available     decimal.Decimal `json:"available"`
	IsValid       bool            `json:"is_valid"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// BasketResponse salida de una canasta.
type BasketResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	CreatedBy         string          `json:"created_by"`
	SourceWarehouseID string          `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string          `json:"dest_warehouse_id,omitempty"`
	DestProjectID     string          `json:"dest_project_id,omitempty"`
	DestUserID        string          `json:"dest_user_id,omitempty"`
	Status            string          `json:"status"`
	Items             []BasketItemDTO `json:"items"`
	TotalItems        int             `json:"total_items"`
	Notes             string          `json:"notes,omitempty"`
	CheckOutPhotos    []string        `json:"check_out_photos,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// BasketListResponse lista paginada de canastas.
type BasketListResponse struct {
	Items []BasketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ResolveResponse salida de GET /api/assets/resolve. Un código desconocido no
// es un error de transporte: found=false con el código escaneado.
type ResolveResponse struct {
	Found    bool           `json:"found"`
	ScanCode string         `json:"scan_code"`
	Item     *BasketItemDTO `json:"item,omitempty"`
}

// PreflightItemDTO resultado de revalidar un ítem antes del commit.
type PreflightItemDTO struct {
	AssetID   string          `json:"asset_id"`
	AssetName string          `json:"asset_name"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	IsValid   bool            `json:"is_valid"`
	Reasons   []string        `json:"reasons,omitempty"`
}

// PreflightResponse salida de POST /api/baskets/:id/validate.
type PreflightResponse struct {
	Items       []PreflightItemDTO `json:"items"`
	CanComplete bool               `json:"can_complete"`
}

// CompletionItemErrorDTO falla aislada de un ítem durante el commit.
type CompletionItemErrorDTO struct {
	AssetID string `json:"asset_id"`
	Message string `json:"message"`
}

// CompletionResponse resumen del commit. succeeded < total_items indica éxito
// parcial aunque la respuesta HTTP sea 200.
type CompletionResponse struct {
	BasketID     string                   `json:"basket_id"`
	TransferType string                   `json:"transfer_type"`
	TotalItems   int                      `json:"total_items"`
	Succeeded    int                      `json:"succeeded"`
	Failed       int                      `json:"failed"`
	Errors       []CompletionItemErrorDTO `json:"errors,omitempty"`
	CompletedAt  time.Time                `json:"completed_at"`
}

// InvalidItemsResponse cuerpo de error cuando el commit se rechaza por ítems
// inválidos: lista los activos ofensores con sus advertencias.
type InvalidItemsResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Items   []InvalidItemDetail `json:"items"`
}

// InvalidItemDetail detalle de un activo ofensor.
type InvalidItemDetail struct {
	AssetID   string   `json:"asset_id"`
	AssetName string   `json:"asset_name"`
	Warnings  []string `json:"warnings"`
}

// ToBasketItemDTO mapea el objeto de valor del dominio.
func ToBasketItemDTO(it entity.BasketItem) BasketItemDTO {
	return BasketItemDTO{
		AssetID:       it.AssetID,
		AssetName:     it.AssetName,
		ScanCode:      it.ScanCode,
		WarehouseName: it.WarehouseName,
		CurrentStock:  it.CurrentStock,
		Quantity:      it.Quantity,
		Available:     it.Available,
		IsValid:       it.IsValid,
		Warnings:      it.Warnings,
	}
}

// ToBasketResponse mapea la canasta completa.
func ToBasketResponse(b *entity.Basket) *BasketResponse {
	if b == nil {
		return nil
	}
	items := make([]BasketItemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, ToBasketItemDTO(it))
	}
	return &BasketResponse{
		ID:                b.ID,
		CompanyID:         b.CompanyID,
		CreatedBy:         b.CreatedBy,
		SourceWarehouseID: b.SourceWarehouseID,
		DestWarehouseID:   b.DestWarehouseID,
		DestProjectID:     b.DestProjectID,
		DestUserID:        b.DestUserID,
		Status:            b.Status,
		Items:             items,
		TotalItems:        b.TotalItems,
		Notes:             b.Notes,
		CheckOutPhotos:    b.CheckOutPhotos,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		CompletedAt:       b.CompletedAt,
	}
}
