package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain"
)

// Estados del ciclo de vida de una canasta de traslado.
// draft → pending → completed | cancelled (los dos últimos son terminales).
const (
	BasketStatusDraft     = "draft"
	BasketStatusPending   = "pending"
	BasketStatusCompleted = "completed"
	BasketStatusCancelled = "cancelled"
)

// Tipos de traslado según el destino de la canasta.
const (
	TransferTypeWarehouse = "warehouse"
	TransferTypeProject   = "project"
	TransferTypeUser      = "user"
)

// BasketItem es un objeto de valor embebido en la canasta: un escaneo resuelto
// contra el directorio de activos, con un veredicto de validez CACHEADO al
// momento del escaneo. El veredicto no es garantía; la validación pre-vuelo lo
// rederiva antes del commit porque el stock puede cambiar entre medio.
type BasketItem struct {
	AssetID       string          `json:"asset_id"`
	AssetName     string          `json:"asset_name"`
	ScanCode      string          `json:"scan_code"`
	WarehouseName string          `json:"warehouse_name"` // snapshot al escanear
	CurrentStock  decimal.Decimal `json:"current_stock"`  // snapshot al escanear
	Quantity      decimal.Decimal `json:"quantity"`       // cantidad solicitada
	Available     decimal.Decimal `json:"available"`      // disponible al escanear
	IsValid       bool            `json:"is_valid"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// QuantityWarning deriva la advertencia de stock parcial ("solo N disponibles").
// Retorna ok=false si la cantidad solicitada sí alcanza o no hay stock alguno.
func QuantityWarning(available, requested decimal.Decimal) (string, bool) {
	if available.GreaterThan(decimal.Zero) && available.LessThan(requested) {
		return fmt.Sprintf("solo %s disponibles", available.String()), true
	}
	return "", false
}

func isQuantityWarning(w string) bool {
	return strings.HasPrefix(w, "solo ") && strings.HasSuffix(w, " disponibles")
}

// RefreshQuantityWarning rederiva únicamente la clase de advertencia de stock
// parcial contra la cantidad actual del ítem; las demás advertencias quedan
// intactas.
func (it *BasketItem) RefreshQuantityWarning() {
	kept := it.Warnings[:0]
	for _, w := range it.Warnings {
		if !isQuantityWarning(w) {
			kept = append(kept, w)
		}
	}
	if w, ok := QuantityWarning(it.Available, it.Quantity); ok {
		kept = append(kept, w)
	}
	it.Warnings = kept
}

// Basket es la raíz de agregado del flujo de traslados: acumula movimientos
// escaneados por un operario móvil antes de confirmarlos. Los ítems se guardan
// como un único valor ordenado (orden de escaneo) y toda mutación pasa por los
// métodos del agregado.
type Basket struct {
	ID        string
	CompanyID string
	CreatedBy string // operario que creó la canasta; submitter original

	SourceWarehouseID string

	// Destino de ruteo: a lo sumo uno. Al completar se resuelve por prioridad
	// proyecto > usuario > bodega.
	DestWarehouseID string
	DestProjectID   string
	DestUserID      string

	Status string
	Items  []BasketItem

	TotalItems int             // derivado: cantidad de ítems, no suma de cantidades
	TotalValue decimal.Decimal // derivado: suma de valor estimado, opcional

	Notes          string
	CheckOutPhotos []string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	DeletedAt   *time.Time
}

// HasRoutingTarget indica si la canasta tiene algún destino definido.
func (b *Basket) HasRoutingTarget() bool {
	return b.DestProjectID != "" || b.DestUserID != "" || b.DestWarehouseID != ""
}

// TransferType resuelve el tipo de traslado por prioridad excluyente:
// proyecto > usuario > bodega.
func (b *Basket) TransferType() string {
	switch {
	case b.DestProjectID != "":
		return TransferTypeProject
	case b.DestUserID != "":
		return TransferTypeUser
	default:
		return TransferTypeWarehouse
	}
}

// IsTerminal indica si la canasta ya no admite transición alguna.
func (b *Basket) IsTerminal() bool {
	return b.Status == BasketStatusCompleted || b.Status == BasketStatusCancelled
}

func (b *Basket) guardDraft() error {
	if b.Status != BasketStatusDraft {
		return &domain.InvalidStateError{Status: b.Status}
	}
	return nil
}

// recount recalcula los contadores derivados tras cualquier mutación de ítems.
func (b *Basket) recount() {
	b.TotalItems = len(b.Items)
}

// AddItem agrega un ítem resuelto. Solo legal en draft. Si el activo ya está
// en la lista, fusiona sumando la cantidad solicitada y rederiva la
// advertencia de stock parcial contra la cantidad fusionada; si no, lo agrega
// al final preservando el orden de escaneo.
func (b *Basket) AddItem(item BasketItem) error {
	if err := b.guardDraft(); err != nil {
		return err
	}
	for i := range b.Items {
		if b.Items[i].AssetID == item.AssetID {
			b.Items[i].Quantity = b.Items[i].Quantity.Add(item.Quantity)
			b.Items[i].RefreshQuantityWarning()
			b.recount()
			return nil
		}
	}
	b.Items = append(b.Items, item)
	b.recount()
	return nil
}

// UpdateItemQuantity reemplaza la cantidad solicitada del activo indicado,
// rederivando solo la advertencia de stock parcial. Legal en draft o, para el
// submitter original, en pending.
func (b *Basket) UpdateItemQuantity(assetID string, quantity decimal.Decimal, actorID string) error {
	allowed := b.Status == BasketStatusDraft ||
		(b.Status == BasketStatusPending && actorID == b.CreatedBy)
	if !allowed {
		return &domain.InvalidStateError{Status: b.Status}
	}
	for i := range b.Items {
		if b.Items[i].AssetID == assetID {
			b.Items[i].Quantity = quantity
			b.Items[i].RefreshQuantityWarning()
			b.recount()
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// RemoveItem elimina el ítem del activo indicado. Solo legal en draft.
func (b *Basket) RemoveItem(assetID string) error {
	if err := b.guardDraft(); err != nil {
		return err
	}
	for i := range b.Items {
		if b.Items[i].AssetID == assetID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			b.recount()
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// Submit pasa la canasta de draft a pending.
func (b *Basket) Submit() error {
	if err := b.guardDraft(); err != nil {
		return err
	}
	b.Status = BasketStatusPending
	return nil
}

// Cancel pasa la canasta a cancelled desde draft o pending.
func (b *Basket) Cancel() error {
	if b.IsTerminal() {
		return &domain.InvalidStateError{Status: b.Status}
	}
	b.Status = BasketStatusCancelled
	return nil
}

// MarkCompleted sella la canasta como completada con su marca de tiempo.
func (b *Basket) MarkCompleted(now time.Time) {
	b.Status = BasketStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
}
