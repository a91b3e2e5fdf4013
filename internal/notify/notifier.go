package notify

import (
	"context"
	"fmt"

	"roomdesk/pkg/kafka"
	"roomdesk/pkg/logger"
	"roomdesk/pkg/model"
)

const deliveryOK = "ok"
const deliverySkipped = "skipped"

// DeliveryReport is returned to the originating caller as a side channel:
// it describes how far the fanout got without ever failing the booking
// operation itself.
type DeliveryReport struct {
	Observers int    `json:"observers"`
	Slack     string `json:"slack"`
	Events    string `json:"events"`
}

// Notifier is consumed by the negotiation service after submit and resolve.
type Notifier interface {
	BookingSubmitted(ctx context.Context, booking *model.Booking) DeliveryReport
	BookingResolved(ctx context.Context, booking *model.Booking, status model.BookingStatus) DeliveryReport
}

type fanoutNotifier struct {
	registry *Registry
	slack    *SlackClient
	producer *kafka.Producer
	log      *logger.Logger
}

func NewNotifier(registry *Registry, slack *SlackClient, producer *kafka.Producer, log *logger.Logger) Notifier {
	return &fanoutNotifier{
		registry: registry,
		slack:    slack,
		producer: producer,
		log:      log,
	}
}

func (n *fanoutNotifier) BookingSubmitted(ctx context.Context, booking *model.Booking) DeliveryReport {
	text := fmt.Sprintf("New booking notification: %s, %s–%s, group %s",
		booking.Room.Name,
		booking.Start.Format("02.01 15:04"),
		booking.End.Format("15:04"),
		booking.GroupName,
	)
	return n.deliver(ctx, NewEvent(EventBookingSubmitted, booking, text))
}

func (n *fanoutNotifier) BookingResolved(ctx context.Context, booking *model.Booking, status model.BookingStatus) DeliveryReport {
	eventType := EventBookingRejected
	verb := "rejected"
	if status == model.StatusConfirmed {
		eventType = EventBookingConfirmed
		verb = "confirmed"
	}

	text := fmt.Sprintf("Booking %s: %s, %s–%s, group %s",
		verb,
		booking.Room.Name,
		booking.Start.Format("02.01 15:04"),
		booking.End.Format("15:04"),
		booking.GroupName,
	)
	return n.deliver(ctx, NewEvent(eventType, booking, text))
}

func (n *fanoutNotifier) deliver(ctx context.Context, ev Event) DeliveryReport {
	report := DeliveryReport{
		Observers: n.registry.Broadcast(ev),
		Slack:     deliverySkipped,
		Events:    deliverySkipped,
	}

	if n.slack != nil && n.slack.Enabled() {
		if err := n.slack.PostMessage(ctx, ev.Message); err != nil {
			n.log.Warn("Slack delivery failed", "event_id", ev.ID, "error", err)
			report.Slack = err.Error()
		} else {
			report.Slack = deliveryOK
		}
	}

	if n.producer != nil {
		msg := kafka.NewMessage().
			WithKey(ev.Booking.Room.Name).
			WithValue(ev).
			WithEventType(ev.Type).
			WithSource("roomdesk").
			Build()

		if err := n.producer.Publish(ctx, msg); err != nil {
			n.log.Warn("Kafka delivery failed", "event_id", ev.ID, "error", err)
			report.Events = err.Error()
		} else {
			report.Events = deliveryOK
		}
	}

	n.log.Info("Booking event fanned out",
		"event_id", ev.ID,
		"event_type", ev.Type,
		"observers", report.Observers,
		"slack", report.Slack,
		"events", report.Events,
	)
	return report
}
