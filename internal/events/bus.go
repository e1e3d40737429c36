package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Pipeline event types published on the bus.
const (
	TypeDecisionSubmitted = "decision.submitted"
	TypeDecisionStep      = "decision.step"
	TypeDecisionComplete  = "decision.complete"
	TypeDecisionFailed    = "decision.failed"
)

// Source identifies this service in event envelopes.
const Source = "govlayer/pipeline"

// Emitter is the publishing side of the bus. The pipeline depends on
// this interface so tests can capture events without a live bus.
type Emitter interface {
	Emit(eventType, subject, tenantID string, data map[string]interface{})
}

// CloudEvent is the CloudEvents 1.0 envelope used for all pipeline
// progress events.
type CloudEvent struct {
	SpecVersion string                 `json:"specversion"`
	Type        string                 `json:"type"`
	Source      string                 `json:"source"`
	ID          string                 `json:"id"`
	Time        time.Time              `json:"time"`
	Subject     string                 `json:"subject,omitempty"`
	TenantID    string                 `json:"tenantid,omitempty"`
	Data        map[string]interface{} `json:"data"`
}

// NewCloudEvent builds a CloudEvents 1.0 compliant envelope. Subject is
// the decision id the event concerns.
func NewCloudEvent(eventType, subject, tenantID string, data map[string]interface{}) *CloudEvent {
	return &CloudEvent{
		SpecVersion: "1.0",
		Type:        eventType,
		Source:      Source,
		ID:          fmt.Sprintf("ce-%d", time.Now().UnixNano()),
		Time:        time.Now().UTC(),
		Subject:     subject,
		TenantID:    tenantID,
		Data:        data,
	}
}

// JSON serializes the event.
func (ce *CloudEvent) JSON() ([]byte, error) {
	return json.Marshal(ce)
}

// Bus is an in-process pub/sub bus. Delivery is best-effort: a
// subscriber with a full buffer misses the event rather than blocking
// the pipeline.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan *CloudEvent
	allSubs     []chan *CloudEvent
	bufferSize  int
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]chan *CloudEvent),
		bufferSize:  100,
	}
}

// Subscribe returns a channel receiving events of the given types, or
// all events when no types are named.
func (b *Bus) Subscribe(eventTypes ...string) chan *CloudEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *CloudEvent, b.bufferSize)
	if len(eventTypes) == 0 {
		b.allSubs = append(b.allSubs, ch)
	} else {
		for _, et := range eventTypes {
			b.subscribers[et] = append(b.subscribers[et], ch)
		}
	}
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch chan *CloudEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for et, subs := range b.subscribers {
		filtered := make([]chan *CloudEvent, 0, len(subs))
		for _, s := range subs {
			if s != ch {
				filtered = append(filtered, s)
			}
		}
		b.subscribers[et] = filtered
	}

	filtered := make([]chan *CloudEvent, 0, len(b.allSubs))
	for _, s := range b.allSubs {
		if s != ch {
			filtered = append(filtered, s)
		}
	}
	b.allSubs = filtered

	close(ch)
}

// Publish delivers the event to all matching subscribers.
func (b *Bus) Publish(event *CloudEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	deliver := func(ch chan *CloudEvent) {
		select {
		case ch <- event:
		default:
			slog.Debug("event dropped, subscriber buffer full",
				"type", event.Type, "subject", event.Subject)
		}
	}
	for _, ch := range b.subscribers[event.Type] {
		deliver(ch)
	}
	for _, ch := range b.allSubs {
		deliver(ch)
	}
}

// Emit creates and publishes an event in one call.
func (b *Bus) Emit(eventType, subject, tenantID string, data map[string]interface{}) {
	b.Publish(NewCloudEvent(eventType, subject, tenantID, data))
}

// SubscriberCount reports the number of active subscription channels.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	count := len(b.allSubs)
	for _, subs := range b.subscribers {
		count += len(subs)
	}
	return count
}
