package main

import (
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/handler"
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/repository"
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/service"
	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/validator"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/app"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka"
	kafka_config "github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka/config"
	kafka_middleware "github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka/middleware"
)

const ServiceName = "buses"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	cfg.Log.Info("Starting Buses service")
	busService := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBusHandler(busService, cfg.Log))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, bus events will not be published")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBusEventsTopic, cfg.KafkaBusEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	cfg.Log.Info("Kafka producer initialized",
		"topic", cfg.KafkaBusEventsTopic,
		"dlq_topic", cfg.KafkaBusEventsDLQ,
	)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BusService {
	busValidator := validator.NewBusValidator(cfg.Log)
	busRepo := repository.NewMongoBusRepository(cfg)
	events := service.NewEventPublisher(producer, cfg.Log)
	busService := service.NewBusService(
		busRepo,
		busValidator,
		events,
		cfg,
	)

	cfg.Log.Info("Bus service initialized", "database", cfg.MongoDatabaseName)
	return busService
}
