package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrItemNotFound       = errors.New("el activo no está en la canasta")
	ErrEmptyBasket        = errors.New("la canasta no tiene ítems")
	ErrInvalidBasketState = errors.New("el estado de la canasta no permite la operación")
	ErrInvalidItems       = errors.New("la canasta tiene ítems inválidos")
)

// InvalidStateError indica una mutación o commit sobre una canasta cuyo estado
// no lo permite; siempre nombra el estado actual.
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: estado actual %q", ErrInvalidBasketState.Error(), e.Status)
}

// Unwrap permite errors.Is(err, ErrInvalidBasketState).
func (e *InvalidStateError) Unwrap() error { return ErrInvalidBasketState }

// InvalidItem describe un ítem que no pasó la validación al intentar completar.
type InvalidItem struct {
	AssetID   string   `json:"asset_id"`
	AssetName string   `json:"asset_name"`
	Warnings  []string `json:"warnings"`
}

// InvalidItemsError acompaña el rechazo total del commit: lista los activos
// ofensores con sus advertencias. Ninguna mutación ocurre cuando se retorna.
type InvalidItemsError struct {
	Items []InvalidItem
}

func (e *InvalidItemsError) Error() string {
	ids := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		ids = append(ids, it.AssetID)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidItems.Error(), strings.Join(ids, ", "))
}

// Unwrap permite errors.Is(err, ErrInvalidItems).
func (e *InvalidItemsError) Unwrap() error { return ErrInvalidItems }
