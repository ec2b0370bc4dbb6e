package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/internal/application/dto"
	"github.com/tu-usuario/activos-pro/internal/domain"
)

// BasketHandler maneja las peticiones HTTP del flujo de canastas (protegido).
type BasketHandler struct {
	manager   *appbasket.Manager
	preflight *appbasket.Preflight
	completer *appbasket.Completer
}

// NewBasketHandler construye el handler.
func NewBasketHandler(manager *appbasket.Manager, preflight *appbasket.Preflight, completer *appbasket.Completer) *BasketHandler {
	return &BasketHandler{manager: manager, preflight: preflight, completer: completer}
}

// writeDomainError mapea errores de dominio a códigos HTTP. El orden importa:
// ErrItemNotFound e InvalidItemsError se distinguen antes que sus sentinelas
// más genéricos.
func writeDomainError(c *fiber.Ctx, err error) error {
	var invalidItems *domain.InvalidItemsError
	if errors.As(err, &invalidItems) {
		items := make([]dto.InvalidItemDetail, 0, len(invalidItems.Items))
		for _, it := range invalidItems.Items {
			items = append(items, dto.InvalidItemDetail{
				AssetID:   it.AssetID,
				AssetName: it.AssetName,
				Warnings:  it.Warnings,
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.InvalidItemsResponse{
			Code:    "INVALID_ITEMS",
			Message: "la canasta tiene ítems inválidos",
			Items:   items,
		})
	}
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidBasketState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_BASKET_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrEmptyBasket):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_BASKET", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear canasta de traslado
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBasketRequest  true  "Datos de la canasta"
// @Success      201   {object}  dto.BasketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/baskets [post]
func (h *BasketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBasketRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	b, err := h.manager.Create(c.Context(), GetCompanyID(c), GetUserID(c), appbasket.CreateInput{
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		DestProjectID:     in.DestProjectID,
		DestUserID:        in.DestUserID,
		Notes:             in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBasketResponse(b))
}

// GetByID godoc
// @Summary      Obtener canasta por ID
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canasta"
// @Success      200  {object}  dto.BasketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [get]
func (h *BasketHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.manager.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// List godoc
// @Summary      Listar canastas de la empresa
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BasketListResponse
// @Router       /api/baskets [get]
func (h *BasketHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	list, err := h.manager.List(c.Context(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.BasketResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *dto.ToBasketResponse(b))
	}
	return c.JSON(dto.BasketListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// AddItem godoc
// @Summary      Agregar un escaneo a la canasta
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la canasta"
// @Param        body  body  dto.AddItemRequest  true  "Código escaneado y cantidad"
// @Success      200   {object}  dto.BasketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/items [post]
func (h *BasketHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	b, err := h.manager.AddItem(c.Context(), GetCompanyID(c), c.Params("id"), in.ScanCode, in.Quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de un ítem
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "ID de la canasta"
// @Param        assetId  path  string                 true  "ID del activo"
// @Param        body     body  dto.UpdateItemRequest  true  "Nueva cantidad"
// @Success      200      {object}  dto.BasketResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/items/{assetId} [put]
func (h *BasketHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	b, err := h.manager.UpdateItemQuantity(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), c.Params("assetId"), in.Quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// RemoveItem godoc
// @Summary      Quitar un ítem de la canasta
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID de la canasta"
// @Param        assetId  path  string  true  "ID del activo"
// @Success      200      {object}  dto.BasketResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/items/{assetId} [delete]
func (h *BasketHandler) RemoveItem(c *fiber.Ctx) error {
	b, err := h.manager.RemoveItem(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("assetId"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// Submit godoc
// @Summary      Enviar la canasta a pending
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canasta"
// @Success      200  {object}  dto.BasketResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/submit [post]
func (h *BasketHandler) Submit(c *fiber.Ctx) error {
	b, err := h.manager.Submit(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// Cancel godoc
// @Summary      Cancelar la canasta
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canasta"
// @Success      200  {object}  dto.BasketResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/cancel [post]
func (h *BasketHandler) Cancel(c *fiber.Ctx) error {
	b, err := h.manager.Cancel(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToBasketResponse(b))
}

// Delete godoc
// @Summary      Borrar la canasta (borrado lógico)
// @Tags         baskets
// @Security     Bearer
// @Param        id  path  string  true  "ID de la canasta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [delete]
func (h *BasketHandler) Delete(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validate godoc
// @Summary      Revalidar los ítems contra el stock vigente
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canasta"
// @Success      200  {object}  dto.PreflightResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/validate [post]
func (h *BasketHandler) Validate(c *fiber.Ctx) error {
	result, err := h.preflight.ValidateBasket(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.PreflightItemDTO, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, dto.PreflightItemDTO{
			AssetID:   it.AssetID,
			AssetName: it.AssetName,
			Requested: it.Requested,
			Available: it.Available,
			IsValid:   it.IsValid,
			Reasons:   it.Reasons,
		})
	}
	return c.JSON(dto.PreflightResponse{Items: items, CanComplete: result.CanComplete})
}

// Complete godoc
// @Summary      Confirmar la canasta (un traslado por ítem)
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true   "ID de la canasta"
// @Param        body  body  dto.CompleteBasketRequest  false  "Notas y fotos de salida"
// @Success      200   {object}  dto.CompletionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.InvalidItemsResponse
// @Router       /api/baskets/{id}/complete [post]
func (h *BasketHandler) Complete(c *fiber.Ctx) error {
	in := dto.CompleteBasketRequest{}
	if len(c.Body()) > 0 {
		if !parseAndValidate(c, &in) {
			return nil
		}
	}
	result, err := h.completer.Complete(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), appbasket.CompleteInput{
		Notes:          in.Notes,
		CheckOutPhotos: in.CheckOutPhotos,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	errs := make([]dto.CompletionItemErrorDTO, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, dto.CompletionItemErrorDTO{AssetID: e.AssetID, Message: e.Message})
	}
	return c.JSON(dto.CompletionResponse{
		BasketID:     result.BasketID,
		TransferType: result.TransferType,
		TotalItems:   result.TotalItems,
		Succeeded:    result.Succeeded,
		Failed:       result.Failed,
		Errors:       errs,
		CompletedAt:  result.CompletedAt,
	})
}
