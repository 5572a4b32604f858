package notify

//go:generate go run go.uber.org/mock/mockgen -source=./notify.go -destination=./mocks/notify_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"huddle/config"
	"huddle/infras/kafka"
	"huddle/infras/otel"
	"huddle/shared/constant"
)

const (
	EventTypeBookingCreated   = "booking.created"
	EventTypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published for every booking state change.
// Consumers (chat bots, calendars) subscribe to the booking topic.
type BookingEvent struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	RoomID    int64     `json:"room_id"`
	RoomName  string    `json:"room_name"`
	BookedBy  string    `json:"booked_by"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	EmittedAt time.Time `json:"emitted_at"`
}

type Notifier interface {
	BookingCreated(ctx context.Context, event BookingEvent) error
	BookingCancelled(ctx context.Context, event BookingEvent) error
}

type kafkaNotifier struct {
	client kafka.Client
	config *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, conf *config.Config, otl otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		config: conf,
		otel:   otl,
	}
}

func (n *kafkaNotifier) BookingCreated(ctx context.Context, event BookingEvent) error {
	event.Type = EventTypeBookingCreated

	return n.publish(ctx, event)
}

func (n *kafkaNotifier) BookingCancelled(ctx context.Context, event BookingEvent) error {
	event.Type = EventTypeBookingCancelled

	return n.publish(ctx, event)
}

func (n *kafkaNotifier) publish(ctx context.Context, event BookingEvent) error {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type":       event.Type,
		"event.booking_id": int(event.BookingID),
	})

	// Keyed by room so events for one room stay ordered within a partition.
	message := kafka.Message{
		Key:   strconv.FormatInt(event.RoomID, 10),
		Value: event,
	}

	err := n.client.SendMessages(ctx, n.config.Kafka.BookingTopic, message)
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}
