package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/internal/application/dto"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

// AssetHandler expone la resolución de escaneos y la consulta del directorio
// de activos (protegido).
type AssetHandler struct {
	resolver  *appbasket.Resolver
	assetRepo repository.AssetRepository
}

// NewAssetHandler construye el handler.
func NewAssetHandler(resolver *appbasket.Resolver, assetRepo repository.AssetRepository) *AssetHandler {
	return &AssetHandler{resolver: resolver, assetRepo: assetRepo}
}

// Resolve godoc
// @Summary      Resolver un código escaneado
// @Description  Prueba QR, código de barras y código interno en ese orden.
//               Un código desconocido responde 200 con found=false.
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        code          query  string  true   "Código escaneado"
// @Param        quantity      query  number  false  "Cantidad solicitada"  default(1)
// @Param        warehouse_id  query  string  false  "Bodega de origen"
// @Success      200  {object}  dto.ResolveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assets/resolve [get]
func (h *AssetHandler) Resolve(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	quantity := decimal.NewFromInt(1)
	if raw := c.Query("quantity"); raw != "" {
		q, err := decimal.NewFromString(raw)
		if err != nil || !q.GreaterThan(decimal.Zero) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un número mayor a cero"})
		}
		quantity = q
	}

	item, err := h.resolver.Resolve(c.Context(), GetCompanyID(c), code, quantity, c.Query("warehouse_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if item == nil {
		return c.JSON(dto.ResolveResponse{Found: false, ScanCode: code})
	}
	d := dto.ToBasketItemDTO(*item)
	return c.JSON(dto.ResolveResponse{Found: true, ScanCode: code, Item: &d})
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	asset, err := h.assetRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if asset == nil || asset.CompanyID != GetCompanyID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(dto.ToAssetResponse(asset))
}
