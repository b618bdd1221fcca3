package ports

import "github.com/mobivas/vas-platform/internal/domain"

// Broadcaster fans an event out to every currently-connected observer.
// Delivery is at-most-once and best-effort: there is no replay, and an
// observer connecting later never sees the event. Broadcast must not block
// the caller.
type Broadcaster interface {
	Broadcast(event domain.Event)
}
