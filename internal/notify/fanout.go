// Package notify fans booking events out to connected admin observers and
// to the external channels (Slack, Kafka). Delivery is best-effort
// everywhere: a notification failure never fails the booking operation
// that produced it.
package notify

import (
	"sync"
	"time"

	"roomdesk/pkg/logger"
	"roomdesk/pkg/model"

	"github.com/google/uuid"
)

const (
	EventBookingSubmitted = "booking.submitted"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
)

// observerBuffer is the per-observer channel depth. An observer that falls
// this far behind is considered dead and is dropped on the next broadcast.
const observerBuffer = 16

type Event struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Booking *model.Booking `json:"booking,omitempty"`
	Message string         `json:"message,omitempty"`
	Time    time.Time      `json:"time"`
}

func NewEvent(eventType string, booking *model.Booking, message string) Event {
	return Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Booking: booking,
		Message: message,
		Time:    time.Now().UTC(),
	}
}

// Observer is one registered admin stream.
type Observer struct {
	ch chan Event
}

// Events is the receive side consumed by the streaming handler.
func (o *Observer) Events() <-chan Event {
	return o.ch
}

// Registry is the process-wide set of connected admin observers.
type Registry struct {
	mu        sync.Mutex
	observers map[*Observer]struct{}
	log       *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		observers: make(map[*Observer]struct{}),
		log:       log,
	}
}

func (r *Registry) Register() *Observer {
	o := &Observer{ch: make(chan Event, observerBuffer)}

	r.mu.Lock()
	r.observers[o] = struct{}{}
	count := len(r.observers)
	r.mu.Unlock()

	r.log.Info("Admin observer registered", "observers", count)
	return o
}

func (r *Registry) Unregister(o *Observer) {
	r.mu.Lock()
	_, present := r.observers[o]
	delete(r.observers, o)
	count := len(r.observers)
	r.mu.Unlock()

	if present {
		r.log.Info("Admin observer unregistered", "observers", count)
	}
}

// Count returns the number of currently registered observers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

// Broadcast delivers the event to every registered observer. The set is
// snapshotted first so unregistering during delivery cannot race the
// iteration. An observer whose buffer is full is dropped rather than
// blocking delivery to the others.
func (r *Registry) Broadcast(ev Event) int {
	r.mu.Lock()
	snapshot := make([]*Observer, 0, len(r.observers))
	for o := range r.observers {
		snapshot = append(snapshot, o)
	}
	r.mu.Unlock()

	delivered := 0
	for _, o := range snapshot {
		select {
		case o.ch <- ev:
			delivered++
		default:
			r.Unregister(o)
			r.log.Warn("Dropped unresponsive admin observer", "event_type", ev.Type)
		}
	}

	return delivered
}
