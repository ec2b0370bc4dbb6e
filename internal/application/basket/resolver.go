package basket

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

// Resolver convierte un código escaneado más una cantidad solicitada en un
// ítem de canasta con veredicto de validez y advertencias legibles. No lanza
// errores para códigos desconocidos: retorna nil para que el caller decida
// cómo presentarlo.
type Resolver struct {
	assetRepo repository.AssetRepository
}

// NewResolver construye el resolutor de escaneos.
func NewResolver(assetRepo repository.AssetRepository) *Resolver {
	return &Resolver{assetRepo: assetRepo}
}

// lookup prueba los tres identificadores alternos en orden de prioridad:
// código QR, código de barras, código interno. Gana la primera coincidencia
// exacta; no hay búsqueda difusa.
func (r *Resolver) lookup(companyID, code string) (*entity.Asset, error) {
	asset, err := r.assetRepo.GetByQRCode(companyID, code)
	if err != nil || asset != nil {
		return asset, err
	}
	asset, err = r.assetRepo.GetByBarcode(companyID, code)
	if err != nil || asset != nil {
		return asset, err
	}
	return r.assetRepo.GetByAssetCode(companyID, code)
}

// Resolve busca el activo por el código escaneado y computa disponibilidad,
// advertencias y veredicto. Retorna (nil, nil) si ningún identificador
// coincide. Las advertencias se computan de forma independiente y se incluyen
// todas las aplicables; la insuficiencia de cantidad se comunica como
// advertencia y no invalida el ítem, porque el cumplimiento parcial se le
// muestra al operario antes de decidir continuar.
func (r *Resolver) Resolve(_ context.Context, companyID, scanCode string, quantity decimal.Decimal, sourceWarehouseID string) (*entity.BasketItem, error) {
	asset, err := r.lookup(companyID, scanCode)
	if err != nil {
		return nil, fmt.Errorf("resolver escaneo: %w", err)
	}
	if asset == nil {
		return nil, nil
	}

	available := asset.Available()

	var warnings []string
	if sourceWarehouseID != "" && asset.WarehouseID != sourceWarehouseID {
		warnings = append(warnings, "el activo no está en la bodega de origen")
	}
	if !available.GreaterThan(decimal.Zero) {
		warnings = append(warnings, "sin stock disponible")
	}
	if w, ok := entity.QuantityWarning(available, quantity); ok {
		warnings = append(warnings, w)
	}
	if asset.QuantityReserved.GreaterThan(decimal.Zero) {
		warnings = append(warnings, fmt.Sprintf("%s unidades reservadas para otros proyectos", asset.QuantityReserved.String()))
	}
	if asset.Status != entity.AssetStatusAvailable {
		warnings = append(warnings, "estado del activo: "+asset.Status)
	}

	item := &entity.BasketItem{
		AssetID:       asset.ID,
		AssetName:     asset.Name,
		ScanCode:      scanCode,
		WarehouseName: asset.WarehouseName,
		CurrentStock:  asset.QuantityAvailable,
		Quantity:      quantity,
		Available:     available,
		IsValid:       available.GreaterThan(decimal.Zero) && asset.Status == entity.AssetStatusAvailable,
		Warnings:      warnings,
	}
	return item, nil
}
