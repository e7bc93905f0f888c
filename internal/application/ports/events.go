package ports

import (
	"context"
	"time"
)

// Tipos de evento de dominio.
const (
	EventCompanyCreated   = "company.created"
	EventCompanyUpdated   = "company.updated"
	EventCompanyDeleted   = "company.deleted"
	EventClientCreated    = "client.created"
	EventClientUpdated    = "client.updated"
	EventClientDeleted    = "client.deleted"
	EventProductCreated   = "product.created"
	EventProductUpdated   = "product.updated"
	EventProductDeleted   = "product.deleted"
	EventOrderCreated     = "order.created"
	EventOrderUpdated     = "order.updated"
	EventOrderDeleted     = "order.deleted"
	EventOrderLineCreated = "order_product.created"
	EventOrderLineUpdated = "order_product.updated"
	EventOrderLineDeleted = "order_product.deleted"
	EventUserRegistered   = "user.registered"
	EventUserDeleted      = "user.deleted"
)

// Event evento de dominio publicado tras una mutación confirmada.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	CompanyID  string    `json:"companyId,omitempty"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

// EventPublisher puerto de salida para eventos. Publish no bloquea ni falla la operación:
// los errores de entrega los registra el adaptador.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event)
}
