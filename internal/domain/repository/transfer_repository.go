package repository

import "github.com/tu-usuario/activos-pro/internal/domain/entity"

// TransferRepository define el puerto hacia el libro mayor de traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	ListByBasket(basketID string) ([]*entity.Transfer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Transfer, error)
}
