package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// base dependencias comunes de los casos de uso de recursos.
type base struct {
	repos  ports.Repos
	tx     ports.TxRunner
	events ports.EventPublisher
	log    *logger.Logger
}

func newBase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger, component string) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{repos: repos, tx: tx, events: events, log: log.Named(component)}
}

func (b base) publish(ctx context.Context, typ, entityID, companyID, userID string, data any) {
	if b.events == nil {
		return
	}
	b.events.Publish(ctx, ports.Event{
		Type:       typ,
		EntityID:   entityID,
		CompanyID:  companyID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
}

func requireSession(sessionUserID string) error {
	if sessionUserID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func pageOf(p dto.PageRequest) repository.Page {
	return repository.Page{Limit: p.Limit, Offset: p.Offset}.Normalize()
}

func pageResponse(p repository.Page) dto.PageResponse {
	return dto.PageResponse{Limit: p.Limit, Offset: p.Offset}
}
