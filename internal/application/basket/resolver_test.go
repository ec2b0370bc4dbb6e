package basket_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

func TestResolve_CodigoDesconocidoRetornaNil(t *testing.T) {
	resolver := appbasket.NewResolver(newFakeAssetRepo())

	item, err := resolver.Resolve(context.Background(), testCompanyID, "NO-EXISTE", dec("1"), "")

	require.NoError(t, err, "un código desconocido no es un error")
	assert.Nil(t, item)
}

func TestResolve_PrioridadQRSobreBarras(t *testing.T) {
	// Dos activos comparten el código "X": uno como QR, otro como código de
	// barras. Debe ganar la coincidencia por QR.
	byQR := consumableAsset("a1", "X", "10")
	byBarcode := serializedAsset("a2", "QR-a2")
	byBarcode.Barcode = "X"
	resolver := appbasket.NewResolver(newFakeAssetRepo(byBarcode, byQR))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "X", dec("1"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "a1", item.AssetID, "el QR tiene prioridad sobre el código de barras")
}

func TestResolve_PrioridadBarrasSobreCodigoInterno(t *testing.T) {
	byBarcode := consumableAsset("a1", "QR-a1", "10")
	byBarcode.Barcode = "Y"
	byCode := serializedAsset("a2", "QR-a2")
	byCode.AssetCode = "Y"
	resolver := appbasket.NewResolver(newFakeAssetRepo(byCode, byBarcode))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "Y", dec("1"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "a1", item.AssetID)
}

func TestResolve_ItemValidoSinAdvertencias(t *testing.T) {
	resolver := appbasket.NewResolver(newFakeAssetRepo(consumableAsset("a1", "QR-a1", "10")))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("4"), "wh-1")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.IsValid)
	assert.Empty(t, item.Warnings)
	assert.True(t, item.Available.Equal(dec("10")))
	assert.True(t, item.CurrentStock.Equal(dec("10")))
	assert.Equal(t, "Bodega Central", item.WarehouseName)
	assert.Equal(t, "QR-a1", item.ScanCode)
}

func TestResolve_AdvertenciaBodegaDistinta(t *testing.T) {
	resolver := appbasket.NewResolver(newFakeAssetRepo(consumableAsset("a1", "QR-a1", "10")))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("1"), "wh-otra")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Contains(t, item.Warnings, "el activo no está en la bodega de origen")
	assert.True(t, item.IsValid, "otra bodega advierte pero no invalida")
}

func TestResolve_SinStockInvalida(t *testing.T) {
	resolver := appbasket.NewResolver(newFakeAssetRepo(consumableAsset("a1", "QR-a1", "0")))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("1"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.IsValid)
	assert.Contains(t, item.Warnings, "sin stock disponible")
}

func TestResolve_StockParcialAdvierteSinInvalidar(t *testing.T) {
	resolver := appbasket.NewResolver(newFakeAssetRepo(consumableAsset("a1", "QR-a1", "3")))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("5"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.IsValid, "el cumplimiento parcial se decide después, no al escanear")
	assert.Contains(t, item.Warnings, "solo 3 disponibles")
}

func TestResolve_ReservaDescuentaDisponibilidad(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	a.QuantityReserved = dec("4")
	resolver := appbasket.NewResolver(newFakeAssetRepo(a))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("8"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.Available.Equal(dec("6")), "disponible = 10 - 4 reservadas")
	assert.Contains(t, item.Warnings, "solo 6 disponibles")
	assert.Contains(t, item.Warnings, "4 unidades reservadas para otros proyectos")
}

func TestResolve_SerializadoReservadoQuedaInvalido(t *testing.T) {
	a := serializedAsset("a1", "QR-a1")
	a.QuantityReserved = dec("1")
	resolver := appbasket.NewResolver(newFakeAssetRepo(a))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("1"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.IsValid, "un serializado reservado no está disponible")
	assert.True(t, item.Available.IsZero())
}

func TestResolve_EstadoNoDisponibleInvalida(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	a.Status = entity.AssetStatusMaintenance
	resolver := appbasket.NewResolver(newFakeAssetRepo(a))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", dec("1"), "")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.IsValid)
	assert.Contains(t, item.Warnings, "estado del activo: maintenance")
}

func TestResolve_EmpresaAjenaNoResuelve(t *testing.T) {
	a := consumableAsset("a1", "QR-a1", "10")
	a.CompanyID = "otra-empresa"
	resolver := appbasket.NewResolver(newFakeAssetRepo(a))

	item, err := resolver.Resolve(context.Background(), testCompanyID, "QR-a1", decimal.NewFromInt(1), "")

	require.NoError(t, err)
	assert.Nil(t, item, "los activos de otra empresa son invisibles")
}
