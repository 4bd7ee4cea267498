package realtime

import (
	"context"

	"github.com/momentumafrica/momentum-api/internal/logger"
)

// Publisher fans events out to feed subscribers. With a Bus configured the
// event takes the Redis round trip so every instance's Hub sees it; without
// one it goes straight to the local Hub.
type Publisher struct {
	log *logger.Logger
	hub *Hub
	bus Bus
}

func NewPublisher(log *logger.Logger, hub *Hub, bus Bus) *Publisher {
	return &Publisher{log: log, hub: hub, bus: bus}
}

// Publish delivers the event. Delivery is best effort: a bus failure is
// logged and the event still reaches local subscribers.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p.bus != nil {
		if err := p.bus.Publish(ctx, ev); err != nil {
			p.log.Warn("bus publish failed, delivering locally", "topic", ev.Topic, "kind", ev.Kind, "error", err)
			p.hub.Publish(ev)
		}
		return
	}
	p.hub.Publish(ev)
}

// Hub exposes the local hub for subscription endpoints.
func (p *Publisher) Hub() *Hub {
	return p.hub
}
