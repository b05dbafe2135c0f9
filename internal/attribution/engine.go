// Package attribution links previously anonymous events to a newly created
// client or vendedor once the session they came from is identified.
package attribution

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/autocrm/leads-api/internal/metrics"
	"github.com/autocrm/leads-api/internal/models"
)

// ClientWriter persists client records.
type ClientWriter interface {
	Save(ctx context.Context, c *models.Client) error
}

// VendedorWriter persists vendedor records.
type VendedorWriter interface {
	Save(ctx context.Context, v *models.Vendedor) error
}

// EventBackfiller provides the session lookup and full-record rewrite the
// backfill needs.
type EventBackfiller interface {
	BySession(ctx context.Context, sessionID string) ([]models.Event, error)
	Save(ctx context.Context, e *models.Event) error
}

// Engine performs identity creation plus best-effort event backfill.
//
// The identity write must succeed; its failure is the operation's failure.
// The backfill is deliberately non-transactional and its failures are never
// surfaced to the caller: a lead must not be lost because stamping an old
// event hiccuped. Failures are logged and counted instead.
type Engine struct {
	clients    ClientWriter
	vendedores VendedorWriter
	events     EventBackfiller
	log        zerolog.Logger
	metrics    metrics.Provider
}

func New(clients ClientWriter, vendedores VendedorWriter, events EventBackfiller, log zerolog.Logger, provider metrics.Provider) *Engine {
	if provider == nil {
		provider = &metrics.NoopProvider{}
	}
	return &Engine{
		clients:    clients,
		vendedores: vendedores,
		events:     events,
		log:        log,
		metrics:    provider,
	}
}

// AttributeClient persists the client and, when a session is supplied,
// stamps client_id on every event of that session.
func (e *Engine) AttributeClient(ctx context.Context, c *models.Client, sessionID string) error {
	if err := e.clients.Save(ctx, c); err != nil {
		return err
	}
	e.backfill(ctx, sessionID, "client", func(ev *models.Event) {
		ev.ClientID = c.ClientID
	})
	return nil
}

// AttributeVendedor persists the vendedor and stamps vendedor_id on every
// event of the session.
func (e *Engine) AttributeVendedor(ctx context.Context, v *models.Vendedor, sessionID string) error {
	if err := e.vendedores.Save(ctx, v); err != nil {
		return err
	}
	e.backfill(ctx, sessionID, "vendedor", func(ev *models.Event) {
		ev.VendedorID = v.VendedorID
	})
	return nil
}

// backfill rewrites each event of the session with the identity stamped in.
// Each rewrite is independent; a failure partway through leaves the
// remainder unattributed until the next identifying event for the session.
func (e *Engine) backfill(ctx context.Context, sessionID, kind string, stamp func(*models.Event)) {
	if sessionID == "" {
		return
	}
	tags := []string{"identity:" + kind}

	events, err := e.events.BySession(ctx, sessionID)
	if err != nil {
		e.log.Error().Err(err).
			Str("session_id", sessionID).
			Msg("attribution backfill: session lookup failed")
		_ = e.metrics.Count("attribution.backfill_failed", 1, tags)
		return
	}

	for i := range events {
		ev := events[i]
		stamp(&ev)
		if err := e.events.Save(ctx, &ev); err != nil {
			e.log.Error().Err(err).
				Str("session_id", sessionID).
				Str("event_id", ev.EventID).
				Msg("attribution backfill: event rewrite failed")
			_ = e.metrics.Count("attribution.backfill_failed", 1, tags)
			continue
		}
		_ = e.metrics.Count("attribution.events_backfilled", 1, tags)
	}
}
