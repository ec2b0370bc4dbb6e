package basket

import (
	"context"
	"time"
)

// BasketCompletedEvent es el evento de dominio publicado tras confirmar una
// canasta. Incluye el resumen de éxitos/fallas para que los consumidores no
// confundan éxito total con éxito parcial.
type BasketCompletedEvent struct {
	BasketID     string    `json:"basket_id"`
	CompanyID    string    `json:"company_id"`
	TransferType string    `json:"transfer_type"`
	TotalItems   int       `json:"total_items"`
	Succeeded    int       `json:"succeeded"`
	Failed       int       `json:"failed"`
	CompletedBy  string    `json:"completed_by"`
	CompletedAt  time.Time `json:"completed_at"`
}

// EventPublisher publica eventos del ciclo de vida de canastas hacia el bus.
// Las fallas de publicación se registran y nunca afectan el resultado del
// commit.
type EventPublisher interface {
	PublishBasketCompleted(ctx context.Context, event BasketCompletedEvent) error
}
