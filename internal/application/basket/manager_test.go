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

func newManager(assetRepo *fakeAssetRepo, basketRepo *fakeBasketRepo, warehouseRepo *fakeWarehouseRepo) *appbasket.Manager {
	return appbasket.NewManager(basketRepo, warehouseRepo, appbasket.NewResolver(assetRepo))
}

func centralWarehouse() *entity.Warehouse {
	return &entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Name: "Bodega Central"}
}

func TestCreate_CanastaEnDraft(t *testing.T) {
	basketRepo := newFakeBasketRepo()
	m := newManager(newFakeAssetRepo(), basketRepo, newFakeWarehouseRepo(centralWarehouse()))

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{
		SourceWarehouseID: "wh-1",
		DestUserID:        "dest-user",
		Notes:             "salida de obra",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BasketStatusDraft, b.Status)
	assert.Equal(t, testUserID, b.CreatedBy)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, 0, b.TotalItems)
	assert.Contains(t, basketRepo.baskets, b.ID)
}

func TestCreate_MasDeUnDestinoRechaza(t *testing.T) {
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo())

	_, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{
		DestProjectID: "p1",
		DestUserID:    "u1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_BodegaInexistenteRechaza(t *testing.T) {
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo())

	_, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{
		SourceWarehouseID: "wh-fantasma",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_BodegaDeOtraEmpresaRechaza(t *testing.T) {
	wh := centralWarehouse()
	wh.CompanyID = "otra-empresa"
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo(wh))

	_, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{
		DestWarehouseID: "wh-1",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_FlujoDeEscaneoCompleto(t *testing.T) {
	asset := consumableAsset("a1", "QR-a1", "10")
	basketRepo := newFakeBasketRepo()
	m := newManager(newFakeAssetRepo(asset), basketRepo, newFakeWarehouseRepo(centralWarehouse()))

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{
		SourceWarehouseID: "wh-1",
		DestUserID:        "dest-user",
	})
	require.NoError(t, err)

	b, err = m.AddItem(context.Background(), testCompanyID, b.ID, "QR-a1", dec("2"))
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.True(t, b.Items[0].Quantity.Equal(dec("2")))

	// re-escaneo: fusiona
	b, err = m.AddItem(context.Background(), testCompanyID, b.ID, "QR-a1", dec("3"))
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.True(t, b.Items[0].Quantity.Equal(dec("5")))
	assert.Equal(t, 1, b.TotalItems)
	assert.Equal(t, 2, basketRepo.saves, "cada escaneo persiste el registro completo")
}

func TestAddItem_CodigoDesconocido(t *testing.T) {
	basketRepo := newFakeBasketRepo()
	m := newManager(newFakeAssetRepo(), basketRepo, newFakeWarehouseRepo())

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{DestUserID: "u1"})
	require.NoError(t, err)

	_, err = m.AddItem(context.Background(), testCompanyID, b.ID, "NO-EXISTE", dec("1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "NO-EXISTE", "el error debe nombrar el código escaneado")
}

func TestAddItem_CantidadNoPositiva(t *testing.T) {
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo())

	_, err := m.AddItem(context.Background(), testCompanyID, "b1", "QR-a1", dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = m.AddItem(context.Background(), testCompanyID, "b1", "QR-a1", dec("-2"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemQuantity_EnPendingSoloSubmitter(t *testing.T) {
	asset := consumableAsset("a1", "QR-a1", "10")
	m := newManager(newFakeAssetRepo(asset), newFakeBasketRepo(), newFakeWarehouseRepo())

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{DestUserID: "u1"})
	require.NoError(t, err)
	_, err = m.AddItem(context.Background(), testCompanyID, b.ID, "QR-a1", dec("2"))
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), testCompanyID, b.ID)
	require.NoError(t, err)

	// el submitter puede ajustar en pending
	b, err = m.UpdateItemQuantity(context.Background(), testCompanyID, testUserID, b.ID, "a1", dec("7"))
	require.NoError(t, err)
	assert.True(t, b.Items[0].Quantity.Equal(dec("7")))

	// otro usuario no
	_, err = m.UpdateItemQuantity(context.Background(), testCompanyID, "user-2", b.ID, "a1", dec("9"))
	assert.ErrorIs(t, err, domain.ErrInvalidBasketState)
}

func TestRemoveItem_ActivoAusente(t *testing.T) {
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo())

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{DestUserID: "u1"})
	require.NoError(t, err)

	_, err = m.RemoveItem(context.Background(), testCompanyID, b.ID, "a9")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGet_CanastaAjenaProhibida(t *testing.T) {
	b := pendingBasketWith()
	b.CompanyID = "otra-empresa"
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(b), newFakeWarehouseRepo())

	_, err := m.Get(context.Background(), testCompanyID, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_BorradoLogicoOcultaLaCanasta(t *testing.T) {
	basketRepo := newFakeBasketRepo()
	m := newManager(newFakeAssetRepo(), basketRepo, newFakeWarehouseRepo())

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{DestUserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, m.Delete(context.Background(), testCompanyID, b.ID))

	_, err = m.Get(context.Background(), testCompanyID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una canasta borrada lógicamente no existe para las lecturas")
}

func TestCancel_DesdePending(t *testing.T) {
	m := newManager(newFakeAssetRepo(), newFakeBasketRepo(), newFakeWarehouseRepo())

	b, err := m.Create(context.Background(), testCompanyID, testUserID, appbasket.CreateInput{DestUserID: "u1"})
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), testCompanyID, b.ID)
	require.NoError(t, err)

	b, err = m.Cancel(context.Background(), testCompanyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BasketStatusCancelled, b.Status)
}
