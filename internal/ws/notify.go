package ws

import (
	"encoding/json"
	"time"
)

const EventLookupsChanged = "lookups_changed"

// LookupsChangedEvent tells clients to drop their copies of the named lookup
// families.
type LookupsChangedEvent struct {
	Type      string   `json:"type"`
	Families  []string `json:"families"`
	Timestamp string   `json:"timestamp"`
}

// Notifier publishes domain events over the hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) LookupsChanged(families ...string) {
	if n == nil || n.hub == nil || len(families) == 0 {
		return
	}

	b, err := json.Marshal(LookupsChangedEvent{
		Type:      EventLookupsChanged,
		Families:  families,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
