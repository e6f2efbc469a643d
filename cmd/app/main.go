package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	publisher := createPublisher(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(app.CreateResolvePendingFeesCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		GeocodingAPIKey:   os.Getenv("GEOCODING_API_KEY"),
		GeocodingEndpoint: os.Getenv("GEOCODING_ENDPOINT"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:  os.Getenv("RABBITMQ_EXCHANGE"),
	}
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

// createPublisher connects to RabbitMQ. Publishing is best effort, so a
// broker outage at startup degrades to a no-op publisher instead of
// refusing to serve orders.
func createPublisher(configs cmd.Config, logger *slog.Logger) ports.EventPublisher {
	publisher, err := rabbitmq.NewEventPublisher(configs.RabbitMQURL, configs.RabbitMQExchange)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, order events will not be published", "error", err)
		return noopPublisher{}
	}
	return publisher
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderStatusChanged(_ context.Context, _ ports.OrderStatusChangedEvent) error {
	return nil
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	server := httpadapter.NewServer(
		app.CreateCheckoutOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.GeoResolver(),
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
