package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/rabbitmq"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeCreated Type = "booking.created"
	TypeUpdated Type = "booking.updated"
	TypeDeleted Type = "booking.deleted"
)

// Event is the payload published after a successful booking write. Booking is
// empty for deletions.
type Event struct {
	Type       Type                 `json:"type"`
	BookingID  string               `json:"bookingId"`
	Booking    *dto.BookingResponse `json:"booking,omitempty"`
	Actor      string               `json:"actor"`
	OccurredAt time.Time            `json:"occurredAt"`
}

func New(eventType Type, id, actor string, booking *dto.BookingResponse) Event {
	return Event{
		Type:       eventType,
		BookingID:  id,
		Booking:    booking,
		Actor:      actor,
		OccurredAt: timezone.Now(),
	}
}

// Log records a consumed event.
func Log(_ context.Context, event Event) error {
	entry := log.Info().
		Str("type", string(event.Type)).
		Str("id", event.BookingID).
		Str("actor", event.Actor).
		Time("occurredAt", event.OccurredAt)

	if event.Booking != nil {
		entry = entry.
			Str("room", event.Booking.TipeKamar).
			Int64("total", event.Booking.TotalBayar)
	}

	entry.Msg("booking event received")

	return nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", string(event.Type))

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.BookingID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish %s to kafka: %w", event.Type, err)
	}

	return nil
}

type rabbitPublisher struct {
	client rabbitmq.Client
	queue  string
	otel   otel.Otel
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", string(event.Type))

	err = p.client.Publish(ctx, p.queue, event.BookingID, event)
	if err != nil {
		return fmt.Errorf("failed to publish %s to rabbitmq: %w", event.Type, err)
	}

	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, event Event) error {
	log.Debug().Str("type", string(event.Type)).Str("id", event.BookingID).Msg("events disabled, dropping booking event")

	return nil
}

// NewPublisher picks the broker named by EVENTS_DRIVER. The clients are only
// constructed for the selected driver.
func NewPublisher(cfg *config.Config, otel otel.Otel) Publisher {
	switch cfg.EventsDriver() {
	case config.EventsDriverKafka:
		log.Info().Str("topic", cfg.Events.Topic).Msg("booking events published to kafka")

		return &kafkaPublisher{client: kafka.New(cfg), topic: cfg.Events.Topic, otel: otel}
	case config.EventsDriverRabbitMQ:
		log.Info().Str("queue", cfg.Events.Topic).Msg("booking events published to rabbitmq")

		return &rabbitPublisher{client: rabbitmq.New(cfg), queue: cfg.Events.Topic, otel: otel}
	default:
		return noopPublisher{}
	}
}

func NewKafkaPublisher(client kafka.Client, topic string, otel otel.Otel) Publisher {
	return &kafkaPublisher{client: client, topic: topic, otel: otel}
}

func NewRabbitPublisher(client rabbitmq.Client, queue string, otel otel.Otel) Publisher {
	return &rabbitPublisher{client: client, queue: queue, otel: otel}
}
