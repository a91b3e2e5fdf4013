package main

import (
	"context"
	"time"

	"roomdesk/internal/booking/handler"
	"roomdesk/internal/booking/repository"
	"roomdesk/internal/booking/service"
	"roomdesk/internal/booking/validator"
	"roomdesk/internal/notify"
	"roomdesk/pkg/app"
	"roomdesk/pkg/config"
	"roomdesk/pkg/kafka"

	kafka_config "roomdesk/pkg/kafka/config"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "roomdesk"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting roomdesk service")
	cfg.SetMongo()

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	ensureIndexes(cfg, bookingRepo)

	producer := setProducer(cfg)
	registry := notify.NewRegistry(cfg.Log)
	slack := notify.NewSlackClient(cfg.SlackBaseURL, cfg.SlackBotKey, cfg.SlackChannel)
	notifier := notify.NewNotifier(registry, slack, producer, cfg.Log)

	negotiation := service.NewNegotiationService(
		bookingRepo,
		repository.NewMongoUserRepository(cfg),
		validator.NewBookingValidator(cfg.Log),
		notifier,
		cfg,
	)
	rooms := service.NewRoomService(bookingRepo, cfg)
	cfg.Log.Info("Booking services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		&apiRoutes{
			bookings: handler.NewBookingHandler(negotiation, cfg.Log),
			rooms:    handler.NewRoomHandler(rooms, cfg.Log),
		},
		handler.NewEventsHandler(negotiation, registry, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	if producer != nil {
		serverApp.AddShutdownHook(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		})
	}
	serverApp.AddShutdownHook(cfg.GracefulShutdown)

	serverApp.Run()
}

// apiRoutes mounts the booking and room handlers on the shared middleware
// chain as one route set.
type apiRoutes struct {
	bookings *handler.BookingHandler
	rooms    *handler.RoomHandler
}

func (a *apiRoutes) RegisterRoutes(router *httprouter.Router) {
	a.bookings.RegisterRoutes(router)
	a.rooms.RegisterRoutes(router)
}

func ensureIndexes(cfg *config.Config, repo repository.BookingRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to create booking indexes", "error", err)
	}
	cfg.Log.Info("Booking indexes ensured")
}

func setProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Warn("Kafka disabled: invalid configuration", "error", err)
		return nil
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Warn("Kafka disabled: producer initialization failed", "error", err)
		return nil
	}
	return producer
}
