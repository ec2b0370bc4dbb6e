package repository

import (
	"time"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// BasketRepository define el puerto de persistencia para canastas.
// Save tiene semántica de reemplazo completo del registro: la lista de ítems
// se persiste como un único valor atómico (documento JSONB). Las canastas con
// borrado lógico quedan excluidas de toda lectura.
type BasketRepository interface {
	Create(basket *entity.Basket) error
	GetByID(id string) (*entity.Basket, error)
	Save(basket *entity.Basket) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Basket, error)
	SoftDelete(id string, now time.Time) error
}
