package basket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

// Manager aplica las reglas de ciclo de vida de la canasta y orquesta las
// mutaciones de ítems: resuelve el escaneo, muta el agregado y persiste el
// registro completo (los ítems viajan como un valor atómico).
type Manager struct {
	basketRepo    repository.BasketRepository
	warehouseRepo repository.WarehouseRepository
	resolver      *Resolver
}

// NewManager construye el caso de uso.
func NewManager(basketRepo repository.BasketRepository, warehouseRepo repository.WarehouseRepository, resolver *Resolver) *Manager {
	return &Manager{basketRepo: basketRepo, warehouseRepo: warehouseRepo, resolver: resolver}
}

// CreateInput entrada para crear una canasta en draft.
type CreateInput struct {
	SourceWarehouseID string
	DestWarehouseID   string
	DestProjectID     string
	DestUserID        string
	Notes             string
}

// Create crea una canasta en draft. Admite a lo sumo un destino de ruteo
// (bodega, proyecto o usuario); las bodegas referenciadas deben existir y
// pertenecer a la empresa.
func (m *Manager) Create(_ context.Context, companyID, userID string, in CreateInput) (*entity.Basket, error) {
	targets := 0
	for _, t := range []string{in.DestWarehouseID, in.DestProjectID, in.DestUserID} {
		if t != "" {
			targets++
		}
	}
	if targets > 1 {
		return nil, fmt.Errorf("%w: la canasta admite un solo destino", domain.ErrInvalidInput)
	}
	for _, whID := range []string{in.SourceWarehouseID, in.DestWarehouseID} {
		if whID == "" {
			continue
		}
		wh, err := m.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, fmt.Errorf("verificar bodega: %w", err)
		}
		if wh == nil || wh.CompanyID != companyID {
			return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, whID)
		}
	}

	now := time.Now()
	b := &entity.Basket{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		CreatedBy:         userID,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		DestProjectID:     in.DestProjectID,
		DestUserID:        in.DestUserID,
		Status:            entity.BasketStatusDraft,
		Notes:             in.Notes,
		TotalValue:        decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := m.basketRepo.Create(b); err != nil {
		return nil, fmt.Errorf("crear canasta: %w", err)
	}
	return b, nil
}

// Get obtiene una canasta de la empresa; las borradas lógicamente no existen.
func (m *Manager) Get(_ context.Context, companyID, basketID string) (*entity.Basket, error) {
	return m.get(companyID, basketID)
}

func (m *Manager) get(companyID, basketID string) (*entity.Basket, error) {
	b, err := m.basketRepo.GetByID(basketID)
	if err != nil {
		return nil, fmt.Errorf("obtener canasta: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// List lista canastas de la empresa con paginación.
func (m *Manager) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Basket, error) {
	return m.basketRepo.ListByCompany(companyID, limit, offset)
}

// AddItem resuelve el código escaneado y lo agrega a la canasta (fusionando
// por activo si ya estaba). Idempotente respecto al agregado: dos escaneos del
// mismo activo producen un solo ítem con la cantidad sumada.
func (m *Manager) AddItem(ctx context.Context, companyID, basketID, scanCode string, quantity decimal.Decimal) (*entity.Basket, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	b, err := m.get(companyID, basketID)
	if err != nil {
		return nil, err
	}
	item, err := m.resolver.Resolve(ctx, companyID, scanCode, quantity, b.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: código %q", domain.ErrNotFound, scanCode)
	}
	if err := b.AddItem(*item); err != nil {
		return nil, err
	}
	return m.save(b)
}

// UpdateItemQuantity reemplaza la cantidad solicitada de un ítem existente.
func (m *Manager) UpdateItemQuantity(_ context.Context, companyID, userID, basketID, assetID string, quantity decimal.Decimal) (*entity.Basket, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	b, err := m.get(companyID, basketID)
	if err != nil {
		return nil, err
	}
	if err := b.UpdateItemQuantity(assetID, quantity, userID); err != nil {
		return nil, err
	}
	return m.save(b)
}

// RemoveItem quita un ítem de la canasta.
func (m *Manager) RemoveItem(_ context.Context, companyID, basketID, assetID string) (*entity.Basket, error) {
	b, err := m.get(companyID, basketID)
	if err != nil {
		return nil, err
	}
	if err := b.RemoveItem(assetID); err != nil {
		return nil, err
	}
	return m.save(b)
}

// Submit pasa la canasta de draft a pending.
func (m *Manager) Submit(_ context.Context, companyID, basketID string) (*entity.Basket, error) {
	b, err := m.get(companyID, basketID)
	if err != nil {
		return nil, err
	}
	if err := b.Submit(); err != nil {
		return nil, err
	}
	return m.save(b)
}

// Cancel cancela una canasta no terminal.
func (m *Manager) Cancel(_ context.Context, companyID, basketID string) (*entity.Basket, error) {
	b, err := m.get(companyID, basketID)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(); err != nil {
		return nil, err
	}
	return m.save(b)
}

// Delete aplica borrado lógico; la canasta desaparece de todas las vistas.
func (m *Manager) Delete(_ context.Context, companyID, basketID string) error {
	b, err := m.get(companyID, basketID)
	if err != nil {
		return err
	}
	if err := m.basketRepo.SoftDelete(b.ID, time.Now()); err != nil {
		return fmt.Errorf("borrar canasta: %w", err)
	}
	return nil
}

func (m *Manager) save(b *entity.Basket) (*entity.Basket, error) {
	b.UpdatedAt = time.Now()
	if err := m.basketRepo.Save(b); err != nil {
		return nil, fmt.Errorf("guardar canasta: %w", err)
	}
	return b, nil
}
