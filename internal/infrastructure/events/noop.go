package events

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

var _ ports.EventPublisher = (*NoopPublisher)(nil)

// NoopPublisher se usa cuando no hay brokers configurados; solo deja traza en debug.
type NoopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (n *NoopPublisher) Publish(_ context.Context, evt ports.Event) {
	if n.log == nil {
		return
	}
	n.log.Debug().Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("evento (noop)")
}

// Close no hace nada; existe para intercambiarse con Producer.
func (n *NoopPublisher) Close() {}
