package http

import (
	"github.com/gofiber/fiber/v2"

	apptransfer "github.com/tu-usuario/activos-pro/internal/application/transfer"
	"github.com/tu-usuario/activos-pro/internal/application/dto"
)

// TransferHandler consultas del libro mayor de traslados (protegido).
type TransferHandler struct {
	uc *apptransfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *apptransfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar traslados de la empresa
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        basket_id  query  string  false  "Filtrar por canasta de origen"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	if basketID := c.Query("basket_id"); basketID != "" {
		out, err := h.uc.ListByBasket(GetCompanyID(c), basketID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(out)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByCompany(GetCompanyID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByBasket godoc
// @Summary      Listar los traslados producidos por una canasta
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canasta"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/baskets/{id}/transfers [get]
func (h *TransferHandler) ListByBasket(c *fiber.Ctx) error {
	out, err := h.uc.ListByBasket(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// DownloadReceipt godoc
// @Summary      Descargar el comprobante PDF del traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receipt [get]
func (h *TransferHandler) DownloadReceipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadReceipt(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
