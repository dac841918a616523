package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/skill-matrix-api/internal/config"
	"github.com/skill-matrix-api/internal/handler"
	"github.com/skill-matrix-api/internal/repository"
	"github.com/skill-matrix-api/internal/service"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключение к БД
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := runMigrations(sqlDB); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация репозиториев
	orgRepo := repository.NewOrganizationRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	compRepo := repository.NewCompetencyRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	levelRepo := repository.NewJobLevelRepository(db)
	expRepo := repository.NewExpectationRepository(db)
	assessRepo := repository.NewAssessmentRepository(db)

	// Инициализация сервисов
	orgService := service.NewOrganizationService(orgRepo)
	empService := service.NewEmployeeService(empRepo, levelRepo)
	compService := service.NewCompetencyService(compRepo, skillRepo)
	levelService := service.NewJobLevelService(levelRepo, empRepo)
	assessService := service.NewAssessmentService(assessRepo, empRepo)
	aggService := service.NewAggregationService(assessRepo, empRepo)
	expService := service.NewExpectationService(expRepo, assessRepo, empRepo)

	// Инициализация хендлеров
	empHandler := handler.NewEmployeeHandler(empService, logger)
	compHandler := handler.NewCompetencyHandler(compService, logger)
	levelHandler := handler.NewJobLevelHandler(levelService, logger)
	assHandler := handler.NewAssessmentHandler(assessService, logger)
	expHandler := handler.NewExpectationHandler(expService, logger)
	repHandler := handler.NewReportHandler(aggService, expService, logger)
	orgHandler := handler.NewOrganizationHandler(orgService, logger)

	// Настройка роутера
	router := handler.NewRouter(empHandler, compHandler, levelHandler, assHandler, expHandler, repHandler, orgHandler, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < 30; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, _ := db.DB()
			if sqlDB.Ping() == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
