package main

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/rabbitmq"
	"hotel/internal/domains/booking/event"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.EventsDriver() {
	case config.EventsDriverKafka:
		kafka.New(cfg).Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Events.Topic, func(ctx context.Context, msg kafkaGo.Message) error {
			evt, err := kafka.Decode[event.Event](msg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return event.Log(ctx, evt)
		})
	case config.EventsDriverRabbitMQ:
		rabbitmq.New(cfg).Consume(ctx, cfg.Events.Topic, func(ctx context.Context, delivery amqp.Delivery) error {
			evt, err := rabbitmq.Decode[event.Event](delivery)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return event.Log(ctx, evt)
		})
	default:
		log.Fatal().Str("driver", cfg.EventsDriver()).Msg("EVENTS_DRIVER must be kafka or rabbitmq to run the worker")
	}

	log.Info().Msg("Worker stopped.")
}
