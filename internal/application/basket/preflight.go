package basket

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

// ItemCheck es el resultado de revalidar un ítem contra el estado actual del
// directorio de activos.
type ItemCheck struct {
	AssetID   string
	AssetName string
	Requested decimal.Decimal
	Available decimal.Decimal
	IsValid   bool
	Reasons   []string
}

// PreflightResult agrega los resultados por ítem y el veredicto global.
type PreflightResult struct {
	Items       []ItemCheck
	CanComplete bool
}

// Preflight revalida cada ítem de la canasta contra el estado VIGENTE del
// directorio de activos, independiente de lo capturado al escanear (que puede
// estar obsoleto). Es la compuerta autoritativa previa al commit y es
// estrictamente de solo lectura: no muta la canasta ni ningún activo.
type Preflight struct {
	basketRepo repository.BasketRepository
	assetRepo  repository.AssetRepository
}

// NewPreflight construye el validador pre-vuelo.
func NewPreflight(basketRepo repository.BasketRepository, assetRepo repository.AssetRepository) *Preflight {
	return &Preflight{basketRepo: basketRepo, assetRepo: assetRepo}
}

// ValidateBasket carga la canasta de la empresa y delega en Validate.
func (p *Preflight) ValidateBasket(ctx context.Context, companyID, basketID string) (*PreflightResult, error) {
	b, err := p.basketRepo.GetByID(basketID)
	if err != nil {
		return nil, fmt.Errorf("obtener canasta: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p.Validate(ctx, b)
}

// Validate recorre los ítems re-consultando cada activo POR ID (no por código
// de escaneo) y recomputa la disponibilidad. El veredicto aquí es más
// estricto que el del resolutor: exige disponible ≥ solicitado, porque es la
// última compuerta antes de un commit irreversible.
func (p *Preflight) Validate(_ context.Context, b *entity.Basket) (*PreflightResult, error) {
	result := &PreflightResult{Items: make([]ItemCheck, 0, len(b.Items))}

	allValid := true
	for _, item := range b.Items {
		check := ItemCheck{
			AssetID:   item.AssetID,
			AssetName: item.AssetName,
			Requested: item.Quantity,
		}
		asset, err := p.assetRepo.GetByID(item.AssetID)
		if err != nil {
			return nil, fmt.Errorf("revalidar activo %s: %w", item.AssetID, err)
		}
		if asset == nil {
			check.Available = decimal.Zero
			check.Reasons = append(check.Reasons, "el activo ya no existe")
			allValid = false
			result.Items = append(result.Items, check)
			continue
		}

		available := asset.Available()
		check.Available = available
		if asset.Status != entity.AssetStatusAvailable {
			check.Reasons = append(check.Reasons, "estado del activo: "+asset.Status)
		}
		if !available.GreaterThan(decimal.Zero) {
			check.Reasons = append(check.Reasons, "sin stock disponible")
		} else if available.LessThan(item.Quantity) {
			if w, ok := entity.QuantityWarning(available, item.Quantity); ok {
				check.Reasons = append(check.Reasons, w)
			}
		}
		check.IsValid = asset.Status == entity.AssetStatusAvailable && available.GreaterThanOrEqual(item.Quantity)
		if !check.IsValid {
			allValid = false
		}
		result.Items = append(result.Items, check)
	}

	okStatus := b.Status == entity.BasketStatusDraft || b.Status == entity.BasketStatusPending
	result.CanComplete = allValid && len(b.Items) > 0 && okStatus
	return result, nil
}
