package main

import (
	"os"
	"time"

	"github.com/garageworks/appointment-service/config"
	"github.com/garageworks/appointment-service/internal/consumer"
	"github.com/garageworks/appointment-service/internal/handler"
	"github.com/garageworks/appointment-service/internal/middleware"
	"github.com/garageworks/appointment-service/internal/notify"
	"github.com/garageworks/appointment-service/internal/repository"
	"github.com/garageworks/appointment-service/internal/schedule"
	"github.com/garageworks/appointment-service/internal/service"
	"github.com/garageworks/appointment-service/pkg/database"
	"github.com/garageworks/appointment-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	db := database.NewPostgresDB(cfg.DSN(), logger)

	// RabbitMQ consumer: mirror the service catalog from the catalog service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start consuming")
	}

	catalogConsumer := consumer.NewCatalogConsumer(db, logger.With().Str("component", "catalog-consumer").Logger())
	catalogConsumer.Start(msgs)

	// RabbitMQ publisher: booking notifications, fire-and-forget
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create RabbitMQ publisher")
	}
	defer publisher.Close()

	// Repositories
	apptRepo := repository.NewAppointmentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	// Services
	dispatcher := notify.NewDispatcher(publisher, logger.With().Str("component", "notify").Logger())
	apptSvc := service.NewAppointmentService(
		apptRepo,
		serviceRepo,
		vehicleRepo,
		cfg.Calendar(),
		loc,
		schedule.SystemClock(),
		dispatcher,
		cfg.CancelNotice(),
		logger.With().Str("component", "appointments").Logger(),
	)

	// Echo
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "appointment-service"})
	})

	handler.NewAppointmentHandler(apptSvc, serviceRepo, loc).RegisterRoutes(e)

	logger.Info().Str("port", cfg.ServerPort).Msg("appointment service starting")
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
