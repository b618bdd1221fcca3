package domain

// EventType enumerates the closed set of realtime events pushed to
// observers. Consumers switch on the type and must handle all three.
type EventType string

const (
	EventSubscriptionChanged    EventType = "subscription-update"
	EventSubscriberConnected    EventType = "user-connected"
	EventSubscriberDisconnected EventType = "user-disconnected"
)

// Event is a tagged variant broadcast to every connected observer.
// Subscriptions is populated only for EventSubscriptionChanged and always
// reflects ledger truth at emit time.
type Event struct {
	Type          EventType
	MSISDN        string
	Subscriptions []string
}

// SubscriptionChanged builds a ledger-delta event. The slice is taken
// as-is; callers pass a snapshot, not live store state.
func SubscriptionChanged(msisdn string, subscriptions []string) Event {
	if subscriptions == nil {
		subscriptions = []string{}
	}
	return Event{Type: EventSubscriptionChanged, MSISDN: msisdn, Subscriptions: subscriptions}
}

func SubscriberConnected(msisdn string) Event {
	return Event{Type: EventSubscriberConnected, MSISDN: msisdn}
}

func SubscriberDisconnected(msisdn string) Event {
	return Event{Type: EventSubscriberDisconnected, MSISDN: msisdn}
}
