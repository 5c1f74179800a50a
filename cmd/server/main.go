package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"PerevalDataService/config"
	"PerevalDataService/internal/database/seed"
	deliveryHTTP "PerevalDataService/internal/delivery/http"
	"PerevalDataService/internal/repository/postgres"
	"PerevalDataService/internal/service"
	"PerevalDataService/pkg/database"
	"PerevalDataService/pkg/logger"
	"PerevalDataService/pkg/server"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Версия сервиса
const (
	ServiceVersion = "1.0.0"
)

func main() {
	// Переменные окружения из .env, если файл присутствует
	_ = godotenv.Load()

	// Инициализация логгера
	log := logger.NewLogger()
	log.Info("Запуск сервиса данных о перевалах", zap.String("version", ServiceVersion))

	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	// Определение номеров портов
	httpPort := cfg.HTTP.Port
	healthPort := httpPort + 100
	metricsPort := httpPort + 200

	// Создаем механизм graceful shutdown
	gracefulShutdown := server.NewGracefulShutdown(log, 30*time.Second)

	// Подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	log.Info("Подключение к PostgreSQL установлено")

	// Получаем базовое подключение к PostgreSQL для закрытия
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Не удалось получить экземпляр SQL DB", zap.Error(err))
	}

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Закрытие соединения с PostgreSQL")
		return sqlDB.Close()
	})

	// Заполнение тестовыми данными в режиме разработки
	seeder := seed.NewDevEnvironmentSeeder(db, log)
	if err := seeder.SeedAllDevData(context.Background()); err != nil {
		log.Warn("Не удалось заполнить тестовыми данными", zap.Error(err))
	}

	// Создаем проверку здоровья базы данных
	healthChecker := database.NewDatabaseHealthChecker(db, log)

	// Запускаем сервер для метрик Prometheus
	metricsServer := server.MetricsServer(strconv.Itoa(metricsPort))

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера метрик")
		return metricsServer.Shutdown(ctx)
	})

	// Инициализация репозитория и сервиса
	perevalRepo := postgres.NewPerevalRepository(db)
	perevalService := service.NewPerevalService(perevalRepo, log)

	// Инициализация HTTP сервера
	app := fiber.New(fiber.Config{
		AppName: "PerevalDataService " + ServiceVersion,
	})

	app.Use(server.TracingMiddleware(log))
	app.Use(server.MetricsMiddleware())

	perevalHandler := deliveryHTTP.NewPerevalHandler(perevalService, log)
	perevalHandler.RegisterRoutes(app)

	// Создаем и запускаем HTTP сервер для проверки здоровья
	healthCheck := server.NewHealthCheck(healthChecker, log, ServiceVersion)
	healthCheck.StartServer(healthPort)

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера проверки здоровья")
		return healthCheck.Stop(ctx)
	})

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка HTTP сервера")
		return app.ShutdownWithContext(ctx)
	})

	// Запуск HTTP сервера в отдельной горутине
	go func() {
		log.Info("Запуск HTTP сервера", zap.Int("port", httpPort))
		if err := app.Listen(fmt.Sprintf(":%d", httpPort)); err != nil {
			log.Fatal("Не удалось запустить сервер", zap.Error(err))
		}
	}()

	// Логируем информацию о версии и PID
	hostname, _ := os.Hostname()
	log.Info("Сервис успешно запущен",
		zap.Int("http_port", httpPort),
		zap.Int("health_port", healthPort),
		zap.Int("metrics_port", metricsPort),
		zap.String("version", ServiceVersion),
		zap.Int("pid", os.Getpid()),
		zap.String("hostname", hostname))

	// Ожидаем сигнала остановки
	gracefulShutdown.Wait()
	log.Info("Завершение работы сервиса выполнено")
}
