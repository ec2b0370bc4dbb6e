package basket_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
	"github.com/tu-usuario/activos-pro/pkg/logger"
	"github.com/tu-usuario/activos-pro/pkg/metrics"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets []*entity.Asset

	patches    map[string]repository.AssetAssignmentPatch
	decrements map[string]decimal.Decimal
}

func newFakeAssetRepo(assets ...*entity.Asset) *fakeAssetRepo {
	return &fakeAssetRepo{
		assets:     assets,
		patches:    make(map[string]repository.AssetAssignmentPatch),
		decrements: make(map[string]decimal.Decimal),
	}
}

func (f *fakeAssetRepo) GetByQRCode(companyID, code string) (*entity.Asset, error) {
	return f.find(companyID, func(a *entity.Asset) bool { return a.QRCode == code }), nil
}

func (f *fakeAssetRepo) GetByBarcode(companyID, code string) (*entity.Asset, error) {
	return f.find(companyID, func(a *entity.Asset) bool { return a.Barcode == code }), nil
}

func (f *fakeAssetRepo) GetByAssetCode(companyID, code string) (*entity.Asset, error) {
	return f.find(companyID, func(a *entity.Asset) bool { return a.AssetCode == code }), nil
}

func (f *fakeAssetRepo) GetByID(id string) (*entity.Asset, error) {
	for _, a := range f.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAssetRepo) find(companyID string, match func(*entity.Asset) bool) *entity.Asset {
	for _, a := range f.assets {
		if a.CompanyID == companyID && match(a) {
			return a
		}
	}
	return nil
}

func (f *fakeAssetRepo) UpdateAssignment(id string, patch repository.AssetAssignmentPatch) error {
	f.patches[id] = patch
	return nil
}

func (f *fakeAssetRepo) DecrementQuantity(id string, amount decimal.Decimal) error {
	f.decrements[id] = amount
	return nil
}

type fakeBasketRepo struct {
	baskets map[string]*entity.Basket
	saves   int
}

func newFakeBasketRepo(baskets ...*entity.Basket) *fakeBasketRepo {
	f := &fakeBasketRepo{baskets: make(map[string]*entity.Basket)}
	for _, b := range baskets {
		f.baskets[b.ID] = b
	}
	return f
}

func (f *fakeBasketRepo) Create(b *entity.Basket) error {
	f.baskets[b.ID] = b
	return nil
}

func (f *fakeBasketRepo) GetByID(id string) (*entity.Basket, error) {
	b, ok := f.baskets[id]
	if !ok || b.DeletedAt != nil {
		return nil, nil
	}
	return b, nil
}

func (f *fakeBasketRepo) Save(b *entity.Basket) error {
	f.baskets[b.ID] = b
	f.saves++
	return nil
}

func (f *fakeBasketRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Basket, error) {
	var list []*entity.Basket
	for _, b := range f.baskets {
		if b.CompanyID == companyID && b.DeletedAt == nil {
			list = append(list, b)
		}
	}
	return list, nil
}

func (f *fakeBasketRepo) SoftDelete(id string, now time.Time) error {
	if b, ok := f.baskets[id]; ok {
		b.DeletedAt = &now
	}
	return nil
}

type fakeTransferRepo struct {
	transfers []*entity.Transfer
	// failFor provoca una falla de inserción para los activos indicados.
	failFor map[string]bool
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{failFor: make(map[string]bool)}
}

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	if f.failFor[t.AssetID] {
		return errors.New("insert transfer: conexión perdida")
	}
	f.transfers = append(f.transfers, t)
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	for _, t := range f.transfers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTransferRepo) ListByBasket(basketID string) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range f.transfers {
		if t.BasketID == basketID {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeTransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range f.transfers {
		if t.CompanyID == companyID {
			list = append(list, t)
		}
	}
	return list, nil
}

type fakeMovementRepo struct {
	batches [][]*entity.StockMovement
}

func (f *fakeMovementRepo) CreateBatch(movements []*entity.StockMovement) error {
	f.batches = append(f.batches, movements)
	return nil
}

func (f *fakeMovementRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, batch := range f.batches {
		for _, m := range batch {
			if m.AssetID == assetID {
				list = append(list, m)
			}
		}
	}
	return list, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	f := &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		f.warehouses[w.ID] = w
	}
	return f
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	f.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}

func (f *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range f.warehouses {
		if w.CompanyID == companyID {
			list = append(list, w)
		}
	}
	return list, nil
}

type fakePublisher struct {
	events []appbasket.BasketCompletedEvent
}

func (f *fakePublisher) PublishBasketCompleted(_ context.Context, event appbasket.BasketCompletedEvent) error {
	f.events = append(f.events, event)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fábricas de datos
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "company-1"
	testUserID    = "user-1"
)

func consumableAsset(id, qr string, available string) *entity.Asset {
	return &entity.Asset{
		ID:                id,
		CompanyID:         testCompanyID,
		Name:              "Cemento " + id,
		QRCode:            qr,
		IsConsumable:      true,
		QuantityAvailable: dec(available),
		QuantityReserved:  decimal.Zero,
		Status:            entity.AssetStatusAvailable,
		WarehouseID:       "wh-1",
		WarehouseName:     "Bodega Central",
	}
}

func serializedAsset(id, qr string) *entity.Asset {
	return &entity.Asset{
		ID:            id,
		CompanyID:     testCompanyID,
		Name:          "Taladro " + id,
		QRCode:        qr,
		IsConsumable:  false,
		Status:        entity.AssetStatusAvailable,
		WarehouseID:   "wh-1",
		WarehouseName: "Bodega Central",
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testMetrics() *metrics.Metrics {
	return metrics.New("test")
}
