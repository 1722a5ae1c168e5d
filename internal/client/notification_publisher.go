package client

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NotificationPublisher publishes record-lifecycle events to NATS for
// consumption by the portal's notifications service.
//
// Subject convention: notifications.portal.<event_type>
// Event types: request_withdrawn, retention_sweep_completed,
//              retention_purge_completed
//
// All publish operations are non-fatal — errors are logged but never
// propagated to the caller, so notification failures never interrupt
// lifecycle operations.
type NotificationPublisher struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// LifecycleEvent is the JSON schema published to NATS.
type LifecycleEvent struct {
	EventType  string                 `json:"event_type"`
	Category   string                 `json:"category,omitempty"`
	ResourceID string                 `json:"resource_id,omitempty"`
	ActorID    string                 `json:"actor_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// NewNotificationPublisher creates a publisher backed by the given NATS
// connection. A nil connection makes every publish a no-op.
func NewNotificationPublisher(conn *nats.Conn, log zerolog.Logger) *NotificationPublisher {
	return &NotificationPublisher{conn: conn, log: log}
}

// PublishLifecycleEvent publishes one lifecycle event.
// Subject: notifications.portal.<eventType>
func (p *NotificationPublisher) PublishLifecycleEvent(eventType string, event *LifecycleEvent) {
	if p.conn == nil {
		return
	}

	event.EventType = eventType

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", eventType).Msg("notification: failed to marshal event")
		return
	}

	subject := fmt.Sprintf("notifications.portal.%s", eventType)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("resource_id", event.ResourceID).
			Msg("notification: failed to publish NATS event (non-fatal)")
		return
	}

	p.log.Debug().
		Str("subject", subject).
		Str("resource_id", event.ResourceID).
		Msg("notification: event published")
}
