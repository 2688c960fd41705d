package events

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopPublisher is used when no broker is configured; events only hit the log.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, event DraftEvent) error {
	log.Debug().
		Str("type", string(event.Type)).
		Str("draft_id", event.DraftID).
		Msg("dropping draft event, no publisher configured")
	return nil
}

// Fanout forwards each event to every wrapped publisher and returns the first
// error encountered.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event DraftEvent) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
