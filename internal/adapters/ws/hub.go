package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mobivas/vas-platform/internal/domain"
)

// Hub is the realtime broadcast bus plus the presence set. A single
// dispatch goroutine owns the client map, so fan-out of events for one
// subscriber always happens in emit order. Delivery is at-most-once and
// best-effort: a client whose send buffer is full is dropped rather than
// allowed to stall the bus.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	identify   chan identity
	events     chan domain.Event

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

type identity struct {
	client *Client
	msisdn string
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With("module", "ws", "layer", "adapter"),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		identify:   make(chan identity),
		events:     make(chan domain.Event, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run owns the client map until ctx ends or Close is called. It must run
// on exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	// connection handle -> registered MSISDN, "" until register-user.
	clients := make(map[*Client]string)

	defer func() {
		for c := range clients {
			c.close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case c := <-h.register:
			clients[c] = ""
			h.logger.Info("observer connected", "operation", "ws_connect", "outcome", "success")
		case c := <-h.unregister:
			msisdn, ok := clients[c]
			if !ok {
				continue
			}
			delete(clients, c)
			c.close()
			if msisdn == "" {
				// Never registered: disconnect silently.
				continue
			}
			h.fanOut(clients, domain.SubscriberDisconnected(msisdn), c)
			h.logger.Info("subscriber disconnected", "operation", "ws_disconnect", "outcome", "success", "msisdn", msisdn)
		case id := <-h.identify:
			if _, ok := clients[id.client]; !ok {
				continue
			}
			clients[id.client] = id.msisdn
			h.fanOut(clients, domain.SubscriberConnected(id.msisdn), id.client)
			h.logger.Info("subscriber registered", "operation", "ws_register_user", "outcome", "success", "msisdn", id.msisdn)
		case ev := <-h.events:
			// Ledger deltas go to every observer, the mutating
			// subscriber's own connections included, so all views
			// converge on server truth.
			h.fanOut(clients, ev, nil)
		}
	}
}

// Broadcast implements ports.Broadcaster. It never blocks the mutation
// path: when the hub is saturated or stopped the event is dropped.
func (h *Hub) Broadcast(ev domain.Event) {
	select {
	case h.events <- ev:
	case <-h.done:
	default:
		h.logger.Warn("event dropped, hub saturated", "operation", "ws_broadcast", "outcome", "failure", "event", string(ev.Type))
	}
}

// Close stops the dispatch loop and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}

// fanOut encodes once and queues to every connected client except skip.
// Presence events skip their originating connection, matching the
// broadcast semantics observers expect; ledger deltas pass skip=nil.
func (h *Hub) fanOut(clients map[*Client]string, ev domain.Event, skip *Client) {
	payload, err := json.Marshal(encodeEvent(ev))
	if err != nil {
		h.logger.Error("encode event", "operation", "ws_broadcast", "outcome", "failure", "error", err.Error())
		return
	}
	for c := range clients {
		if c == skip {
			continue
		}
		c.trySend(payload)
	}
}

// wireEvent is the observer-facing JSON shape. Subscriptions is a pointer
// so presence events omit the field while ledger deltas always carry it,
// empty set included.
type wireEvent struct {
	Type          string    `json:"type"`
	User          string    `json:"user"`
	Subscriptions *[]string `json:"subscriptions,omitempty"`
}

func encodeEvent(ev domain.Event) wireEvent {
	out := wireEvent{Type: string(ev.Type), User: ev.MSISDN}
	if ev.Type == domain.EventSubscriptionChanged {
		subs := ev.Subscriptions
		if subs == nil {
			subs = []string{}
		}
		out.Subscriptions = &subs
	}
	return out
}
