package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"distribution/cmd"
	httpin "distribution/internal/adapters/in/http"
	"distribution/internal/adapters/out/postgres/auditrepo"
	"distribution/internal/adapters/out/postgres/inventoryrepo"
	"distribution/internal/adapters/out/postgres/masterdatarepo"
	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/adapters/out/postgres/outboxrepo"
	"distribution/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	warehouseID, err := kernel.UUIDFromString(configs.MainWarehouseID)
	if err != nil {
		log.Fatalf("Invalid MAIN_WAREHOUSE_ID: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, warehouseID, logger)
	defer app.Close()

	if err := app.OrderNumberSequence().Prepare(context.Background()); err != nil {
		log.Fatalf("Failed to prepare order number sequence: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
		RedisAddr:               goDotEnvVariable("REDIS_ADDR"),
		MainWarehouseID:         goDotEnvVariable("MAIN_WAREHOUSE_ID"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&inventoryrepo.RecordDTO{},
		&auditrepo.EventDTO{},
		&outboxrepo.NotificationDTO{},
		&masterdatarepo.ClientProfileDTO{},
		&masterdatarepo.VariantPricingDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateLeaderApproveCommandHandler(),
		app.CreateLeaderRejectCommandHandler(),
		app.CreateAdminApproveCommandHandler(),
		app.CreateAdminRejectCommandHandler(),
		app.CreateBulkApproveCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrdersByStageQueryHandler(),
		app.CreateGetApprovalHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
