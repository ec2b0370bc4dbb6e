package basket_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/internal/domain"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

type completerFixture struct {
	assetRepo    *fakeAssetRepo
	basketRepo   *fakeBasketRepo
	transferRepo *fakeTransferRepo
	movementRepo *fakeMovementRepo
	publisher    *fakePublisher
	completer    *appbasket.Completer
}

func newCompleterFixture(b *entity.Basket, assets ...*entity.Asset) *completerFixture {
	f := &completerFixture{
		assetRepo:    newFakeAssetRepo(assets...),
		basketRepo:   newFakeBasketRepo(b),
		transferRepo: newFakeTransferRepo(),
		movementRepo: &fakeMovementRepo{},
		publisher:    &fakePublisher{},
	}
	f.completer = appbasket.NewCompleter(
		f.basketRepo, f.assetRepo, f.transferRepo, f.movementRepo,
		f.publisher, testMetrics(), testLogger(),
	)
	return f
}

func (f *completerFixture) complete(t *testing.T, basketID string) *appbasket.CompletionResult {
	t.Helper()
	result, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, basketID, appbasket.CompleteInput{})
	require.NoError(t, err)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones: todo-o-nada, cero efectos secundarios
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_ItemInvalidoRechazaSinMutarNada(t *testing.T) {
	ok := consumableAsset("a1", "QR-a1", "10")
	bad := consumableAsset("a2", "QR-a2", "0")
	badItem := itemFor(bad, "1")
	badItem.IsValid = false
	badItem.Warnings = []string{"sin stock disponible"}
	b := pendingBasketWith(itemFor(ok, "1"), badItem)
	f := newCompleterFixture(b, ok, bad)

	_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidItems)

	var invalidErr *domain.InvalidItemsError
	require.ErrorAs(t, err, &invalidErr)
	require.Len(t, invalidErr.Items, 1, "solo los ítems ofensores van en el error")
	assert.Equal(t, "a2", invalidErr.Items[0].AssetID)
	assert.Contains(t, invalidErr.Items[0].Warnings, "sin stock disponible")

	// rechazo total: ningún efecto secundario, ni siquiera para el ítem válido
	assert.Empty(t, f.transferRepo.transfers)
	assert.Empty(t, f.movementRepo.batches)
	assert.Empty(t, f.assetRepo.patches)
	assert.Empty(t, f.assetRepo.decrements)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, entity.BasketStatusPending, b.Status, "la canasta queda intacta")
	assert.Zero(t, f.basketRepo.saves)
}

func TestComplete_CanastaVacia(t *testing.T) {
	b := pendingBasketWith()
	f := newCompleterFixture(b)

	_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyBasket)
	assert.Empty(t, f.transferRepo.transfers)
}

func TestComplete_SinDestino(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	b := pendingBasketWith(itemFor(a, "1"))
	b.DestUserID = ""
	f := newCompleterFixture(b, a)

	_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_EstadoTerminalRechaza(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	for _, status := range []string{entity.BasketStatusCompleted, entity.BasketStatusCancelled} {
		b := pendingBasketWith(itemFor(a, "1"))
		b.Status = status
		f := newCompleterFixture(b, a)

		_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{})

		require.Error(t, err)
		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, status, stateErr.Status)
	}
}

func TestComplete_CanastaAjena(t *testing.T) {
	b := pendingBasketWith()
	b.CompanyID = "otra-empresa"
	f := newCompleterFixture(b)

	_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit: un traslado por ítem, auto-aprobado
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_TrasladoAUsuarioAsignaYMarcaEnUso(t *testing.T) {
	a := serializedAsset("a1", "QR-a1")
	b := pendingBasketWith(itemFor(a, "1"))
	f := newCompleterFixture(b, a)

	result := f.complete(t, b.ID)

	assert.Equal(t, entity.TransferTypeUser, result.TransferType)
	assert.Equal(t, 1, result.Succeeded)
	assert.Zero(t, result.Failed)

	require.Len(t, f.transferRepo.transfers, 1)
	tr := f.transferRepo.transfers[0]
	assert.Equal(t, entity.TransferStatusDelivered, tr.Status, "la vía rápida nace entregada")
	assert.Equal(t, testUserID, tr.RequestedBy)
	assert.Equal(t, testUserID, tr.ApprovedBy, "auto-aprobado: solicitante y aprobador coinciden")
	assert.Equal(t, tr.RequestedAt, tr.ApprovedAt)
	assert.Equal(t, tr.ApprovedAt, tr.DeliveredAt)
	assert.Equal(t, "dest-user", tr.DestUserID)

	patch, ok := f.assetRepo.patches["a1"]
	require.True(t, ok, "el activo debe recibir el parche de asignación")
	require.NotNil(t, patch.AssignedUserID)
	assert.Equal(t, "dest-user", *patch.AssignedUserID)
	require.NotNil(t, patch.Status)
	assert.Equal(t, entity.AssetStatusInUse, *patch.Status)
	assert.NotNil(t, patch.AssignedAt)

	assert.Empty(t, f.movementRepo.batches, "un serializado no genera movimiento de stock")
	assert.Equal(t, entity.BasketStatusCompleted, b.Status)
	assert.NotNil(t, b.CompletedAt)
}

func TestComplete_TrasladoEntreBodegasMueveLaUbicacion(t *testing.T) {
	a := serializedAsset("a1", "QR-a1")
	b := pendingBasketWith(itemFor(a, "1"))
	b.DestUserID = ""
	b.DestWarehouseID = "wh-2"
	b.SourceWarehouseID = "wh-1"
	f := newCompleterFixture(b, a)

	result := f.complete(t, b.ID)

	assert.Equal(t, entity.TransferTypeWarehouse, result.TransferType)
	patch := f.assetRepo.patches["a1"]
	require.NotNil(t, patch.WarehouseID)
	assert.Equal(t, "wh-2", *patch.WarehouseID)
	assert.Nil(t, patch.Status, "entre bodegas no cambia el estado del activo")
	assert.Nil(t, patch.AssignedUserID)
}

func TestComplete_ConsumibleGeneraMovimientoNegativo(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	b := pendingBasketWith(itemFor(a, "4"))
	b.SourceWarehouseID = "wh-1"
	f := newCompleterFixture(b, a)

	f.complete(t, b.ID)

	require.Len(t, f.movementRepo.batches, 1, "los movimientos van en un solo batch")
	batch := f.movementRepo.batches[0]
	require.Len(t, batch, 1)
	mov := batch[0]
	assert.True(t, mov.Quantity.Equal(dec("-4")), "la cantidad del movimiento es negativa")
	assert.Equal(t, f.transferRepo.transfers[0].ID, mov.TransferID, "el movimiento referencia su traslado")
	assert.Equal(t, b.ID, mov.BasketID)
	assert.Equal(t, "wh-1", mov.WarehouseID)

	assert.True(t, f.assetRepo.decrements["a1"].Equal(dec("4")))
}

func TestComplete_DecrementoConPisoEnCero(t *testing.T) {
	// Se solicitaron 5 pero solo quedan 3: el decremento se recorta a 3 y el
	// movimiento registra la salida solicitada completa.
	a := consumableAsset("a1", "QR-a1", "3")
	item := itemFor(a, "5")
	item.IsValid = true
	b := pendingBasketWith(item)
	f := newCompleterFixture(b, a)

	f.complete(t, b.ID)

	assert.True(t, f.assetRepo.decrements["a1"].Equal(dec("3")), "nunca decrementar más de lo disponible")
	mov := f.movementRepo.batches[0][0]
	assert.True(t, mov.Quantity.Equal(dec("-5")))
}

func TestComplete_FallaAisladaNoAbortaElLote(t *testing.T) {
	a1 := consumableAsset("a1", "QR-a1", "10")
	a2 := consumableAsset("a2", "QR-a2", "10")
	a3 := consumableAsset("a3", "QR-a3", "10")
	b := pendingBasketWith(itemFor(a1, "1"), itemFor(a2, "1"), itemFor(a3, "1"))
	f := newCompleterFixture(b, a1, a2, a3)
	f.transferRepo.failFor["a2"] = true

	result := f.complete(t, b.ID)

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "a2", result.Errors[0].AssetID)
	assert.Contains(t, result.Errors[0].Message, "crear traslado")

	// los vecinos se procesan completos
	require.Len(t, f.transferRepo.transfers, 2)
	assert.Equal(t, "a1", f.transferRepo.transfers[0].AssetID)
	assert.Equal(t, "a3", f.transferRepo.transfers[1].AssetID)
	assert.Contains(t, f.assetRepo.patches, "a1")
	assert.NotContains(t, f.assetRepo.patches, "a2", "el ítem fallido no muta su activo")
	assert.Contains(t, f.assetRepo.patches, "a3")

	// la canasta se sella completada aunque hubo fallas parciales
	assert.Equal(t, entity.BasketStatusCompleted, b.Status)
}

func TestComplete_NotasYFotosSePersisten(t *testing.T) {
	a := serializedAsset("a1", "QR-a1")
	b := pendingBasketWith(itemFor(a, "1"))
	f := newCompleterFixture(b, a)

	_, err := f.completer.Complete(context.Background(), testCompanyID, testUserID, b.ID, appbasket.CompleteInput{
		Notes:          "entrega en obra norte",
		CheckOutPhotos: []string{"foto-1.jpg", "foto-2.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, "entrega en obra norte", b.Notes)
	assert.Equal(t, []string{"foto-1.jpg", "foto-2.jpg"}, b.CheckOutPhotos)
	assert.Equal(t, "entrega en obra norte", f.transferRepo.transfers[0].Notes)
}

func TestComplete_PublicaEventoConResumen(t *testing.T) {
	a1 := consumableAsset("a1", "QR-a1", "10")
	a2 := consumableAsset("a2", "QR-a2", "10")
	b := pendingBasketWith(itemFor(a1, "1"), itemFor(a2, "1"))
	f := newCompleterFixture(b, a1, a2)
	f.transferRepo.failFor["a2"] = true

	f.complete(t, b.ID)

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Equal(t, b.ID, ev.BasketID)
	assert.Equal(t, testCompanyID, ev.CompanyID)
	assert.Equal(t, entity.TransferTypeUser, ev.TransferType)
	assert.Equal(t, 2, ev.TotalItems)
	assert.Equal(t, 1, ev.Succeeded)
	assert.Equal(t, 1, ev.Failed, "los consumidores deben poder distinguir éxito parcial")
	assert.Equal(t, testUserID, ev.CompletedBy)
}

func TestComplete_DesdeDraftTambienEsLegal(t *testing.T) {
	a := serializedAsset("a1", "QR-a1")
	b := pendingBasketWith(itemFor(a, "1"))
	b.Status = entity.BasketStatusDraft
	f := newCompleterFixture(b, a)

	result := f.complete(t, b.ID)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, entity.BasketStatusCompleted, b.Status)
}
