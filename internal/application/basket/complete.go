package basket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/activos-pro/internal/domain"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
	"github.com/tu-usuario/activos-pro/pkg/logger"
	"github.com/tu-usuario/activos-pro/pkg/metrics"
)

// CompleteInput entrada para confirmar una canasta.
type CompleteInput struct {
	Notes          string
	CheckOutPhotos []string
}

// ItemError es la falla aislada de un ítem dentro del commit.
type ItemError struct {
	AssetID string `json:"asset_id"`
	Message string `json:"message"`
}

// CompletionResult resume el commit. Un resultado sin error de transporte
// puede reportar fallas parciales: el caller debe inspeccionar el resumen, no
// solo el resultado externo.
type CompletionResult struct {
	BasketID     string
	TransferType string
	TotalItems   int
	Succeeded    int
	Failed       int
	Errors       []ItemError
	CompletedAt  time.Time
}

// Completer convierte una canasta validada en traslados individuales con
// resultados independientes y tolerancia a fallas parciales.
//
// Las precondiciones son estrictas (todo-o-nada, cero efectos secundarios al
// rechazar); una vez dentro del bucle de commit, la falla de un ítem se
// registra en su propia ranura y nunca aborta los demás. El proceso es
// deliberadamente de mejor esfuerzo: un traslado ya creado no se revierte si
// la mutación posterior del activo falla.
type Completer struct {
	basketRepo   repository.BasketRepository
	assetRepo    repository.AssetRepository
	transferRepo repository.TransferRepository
	movementRepo repository.StockMovementRepository
	publisher    EventPublisher
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewCompleter construye el procesador de commit.
func NewCompleter(
	basketRepo repository.BasketRepository,
	assetRepo repository.AssetRepository,
	transferRepo repository.TransferRepository,
	movementRepo repository.StockMovementRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
	log *logger.Logger,
) *Completer {
	return &Completer{
		basketRepo:   basketRepo,
		assetRepo:    assetRepo,
		transferRepo: transferRepo,
		movementRepo: movementRepo,
		publisher:    publisher,
		metrics:      m,
		log:          log,
	}
}

// Complete confirma la canasta: un Transfer por ítem (estado delivered,
// auto-aprobado), mutación de asignación del activo, decremento de stock para
// consumibles con un StockMovement negativo referenciando el traslado, y al
// final un único insert por lotes de los movimientos acumulados.
func (c *Completer) Complete(ctx context.Context, companyID, userID, basketID string, in CompleteInput) (*CompletionResult, error) {
	b, err := c.basketRepo.GetByID(basketID)
	if err != nil {
		return nil, fmt.Errorf("obtener canasta: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Precondiciones: fallar rápido, sin efectos secundarios.
	if b.Status != entity.BasketStatusDraft && b.Status != entity.BasketStatusPending {
		return nil, &domain.InvalidStateError{Status: b.Status}
	}
	if len(b.Items) == 0 {
		return nil, domain.ErrEmptyBasket
	}
	if !b.HasRoutingTarget() {
		return nil, fmt.Errorf("%w: la canasta no tiene destino", domain.ErrInvalidInput)
	}
	if invalid := invalidItems(b); len(invalid) > 0 {
		return nil, &domain.InvalidItemsError{Items: invalid}
	}

	transferType := b.TransferType()
	now := time.Now()

	result := &CompletionResult{
		BasketID:     b.ID,
		TransferType: transferType,
		TotalItems:   len(b.Items),
		CompletedAt:  now,
	}

	var staged []*entity.StockMovement
	for _, item := range b.Items {
		transfer := &entity.Transfer{
			ID:                uuid.New().String(),
			CompanyID:         b.CompanyID,
			BasketID:          b.ID,
			AssetID:           item.AssetID,
			AssetName:         item.AssetName,
			Type:              transferType,
			Quantity:          item.Quantity,
			SourceWarehouseID: b.SourceWarehouseID,
			DestWarehouseID:   b.DestWarehouseID,
			DestProjectID:     b.DestProjectID,
			DestUserID:        b.DestUserID,
			RequestedBy:       userID,
			ApprovedBy:        userID,
			RequestedAt:       now,
			ApprovedAt:        now,
			DeliveredAt:       now,
			Status:            entity.TransferStatusDelivered,
			Notes:             in.Notes,
			CreatedAt:         now,
		}
		if err := c.transferRepo.Create(transfer); err != nil {
			// La falla de un ítem nunca aborta el lote.
			result.Failed++
			result.Errors = append(result.Errors, ItemError{AssetID: item.AssetID, Message: "crear traslado: " + err.Error()})
			c.metrics.ItemFailures.Inc()
			c.log.Warn().Err(err).
				Str("basket_id", b.ID).
				Str("asset_id", item.AssetID).
				Msg("falla al crear traslado del ítem")
			continue
		}
		result.Succeeded++

		if mov := c.applyAssetMutation(b, item, transfer, userID, now); mov != nil {
			staged = append(staged, mov)
		}
	}

	// Insert por lotes de los movimientos acumulados; una falla aquí se
	// registra pero no revierte los traslados ya creados.
	if len(staged) > 0 {
		if err := c.movementRepo.CreateBatch(staged); err != nil {
			c.log.Error().Err(err).
				Str("basket_id", b.ID).
				Int("movements", len(staged)).
				Msg("falla al insertar movimientos de stock")
		}
	}

	b.MarkCompleted(now)
	if in.Notes != "" {
		b.Notes = in.Notes
	}
	if len(in.CheckOutPhotos) > 0 {
		b.CheckOutPhotos = in.CheckOutPhotos
	}
	if err := c.basketRepo.Save(b); err != nil {
		return nil, fmt.Errorf("sellar canasta completada: %w", err)
	}

	c.metrics.BasketsCompleted.Inc()
	c.metrics.TransfersCreated.Add(float64(result.Succeeded))

	if err := c.publisher.PublishBasketCompleted(ctx, BasketCompletedEvent{
		BasketID:     b.ID,
		CompanyID:    b.CompanyID,
		TransferType: transferType,
		TotalItems:   result.TotalItems,
		Succeeded:    result.Succeeded,
		Failed:       result.Failed,
		CompletedBy:  userID,
		CompletedAt:  now,
	}); err != nil {
		c.log.Warn().Err(err).Str("basket_id", b.ID).Msg("falla al publicar evento de canasta completada")
	}

	return result, nil
}

// applyAssetMutation aplica el parche de asignación y, para consumibles, el
// decremento de stock con piso en cero. Las fallas se registran y no
// revierten el traslado ya creado.
func (c *Completer) applyAssetMutation(b *entity.Basket, item entity.BasketItem, transfer *entity.Transfer, userID string, now time.Time) *entity.StockMovement {
	asset, err := c.assetRepo.GetByID(item.AssetID)
	if err != nil || asset == nil {
		c.log.Warn().Err(err).
			Str("basket_id", b.ID).
			Str("asset_id", item.AssetID).
			Msg("no se pudo re-consultar el activo tras crear el traslado")
		return nil
	}

	patch := repository.AssetAssignmentPatch{}
	if b.DestWarehouseID != "" {
		patch.WarehouseID = &b.DestWarehouseID
	}
	inUse := entity.AssetStatusInUse
	if b.DestUserID != "" {
		patch.AssignedUserID = &b.DestUserID
		patch.AssignedAt = &now
		patch.Status = &inUse
	}
	if b.DestProjectID != "" {
		patch.AssignedProjectID = &b.DestProjectID
		patch.AssignedAt = &now
		patch.Status = &inUse
	}
	if err := c.assetRepo.UpdateAssignment(asset.ID, patch); err != nil {
		c.log.Warn().Err(err).
			Str("basket_id", b.ID).
			Str("asset_id", asset.ID).
			Msg("falla al mutar asignación del activo")
	}

	if !asset.IsConsumable {
		return nil
	}

	// Piso en cero: nunca decrementar más de lo disponible.
	dec := item.Quantity
	if dec.GreaterThan(asset.QuantityAvailable) {
		dec = asset.QuantityAvailable
	}
	if err := c.assetRepo.DecrementQuantity(asset.ID, dec); err != nil {
		c.log.Warn().Err(err).
			Str("basket_id", b.ID).
			Str("asset_id", asset.ID).
			Msg("falla al decrementar stock del consumible")
	}

	return &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   b.CompanyID,
		AssetID:     asset.ID,
		WarehouseID: b.SourceWarehouseID,
		TransferID:  transfer.ID,
		BasketID:    b.ID,
		Quantity:    item.Quantity.Neg(),
		CreatedAt:   now,
		CreatedBy:   userID,
	}
}

// invalidItems recoge los ítems cuyo veredicto cacheado es falso.
func invalidItems(b *entity.Basket) []domain.InvalidItem {
	var invalid []domain.InvalidItem
	for _, item := range b.Items {
		if !item.IsValid {
			invalid = append(invalid, domain.InvalidItem{
				AssetID:   item.AssetID,
				AssetName: item.AssetName,
				Warnings:  item.Warnings,
			})
		}
	}
	return invalid
}
