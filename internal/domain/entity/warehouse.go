package entity

import "time"

// Warehouse representa una bodega o sede donde residen activos. Las canastas
// referencian bodegas como origen y como posible destino de ruteo.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
