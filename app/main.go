package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/listeners"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/internal/routes"
	"equipment-tracker/internal/services"
	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/config"
	"equipment-tracker/pkg/customvalidator"
	"equipment-tracker/pkg/database/migrations"
	"equipment-tracker/pkg/database/postgresql"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/eventbus"
	applogger "equipment-tracker/pkg/logger"
	appmiddleware "equipment-tracker/pkg/middleware"
	"equipment-tracker/pkg/service"
	"equipment-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFiles := pflag.StringSlice("env-file", nil, "env files to load before reading the environment")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	logger := applogger.NewLogger()
	defer logger.Sync()

	// 1. Конфиг: без SERVICE_URL и SERVICE_ANON_KEY дальше не идем.
	cfg, err := config.Load(*envFiles...)
	if err != nil {
		logger.Fatal("Некорректная конфигурация", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. База данных и миграции
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("не удалось подключиться к базе данных", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Up(ctx, dbConn, logger); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}
	if *migrateOnly {
		logger.Info("Миграции применены, выходим (--migrate-only)")
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 3. Валидатор
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v, customvalidator.Options{
		AllowedEmailDomain: cfg.Auth.AllowedEmailDomain,
	}); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}

	// 4. Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	backendMetrics := repositories.NewBackendMetrics(registry)

	// 5. Репозитории и сервисы
	bus := eventbus.New(logger)
	collectionRepo := repositories.NewCollectionRepository(dbConn, logger.Named("backend"), backendMetrics)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.Service.URL, cfg.Auth.SessionTTL)

	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, bus, v, logger.Named("auth"), &cfg.Auth, cfg.Service.URL)
	dashboardService := services.NewDashboardService(collectionRepo, logger)

	feed := crud.NewFeed(0)
	crudLogger := logger.Named("crud")
	equipment := crud.NewController(crud.EquipmentSchema(), collectionRepo, authService, feed, v, crudLogger)
	tickets := crud.NewController(crud.TicketSchema(), collectionRepo, authService, feed, v, crudLogger)

	// 6. Навигация: сплэш ждет и таймер, и определение сессии.
	gate := session.NewGate(cfg.UI.SplashDwell, logger.Named("gate"))
	listeners.NewSessionListener(gate, logger, equipment, tickets).Register(bus)
	gate.Mount()
	defer gate.Unmount()

	go func() {
		if err := authService.Restore(ctx); err != nil {
			logger.Warn("Не удалось восстановить сессию", zap.Error(err))
		}
	}()

	// 7. HTTP мост для слоя отображения
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator(v)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", nil, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, appmiddleware.APIKeyHeader},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))

	routes.InitRouter(e, &routes.Dependencies{
		Gate:      gate,
		Auth:      authService,
		Dashboard: dashboardService,
		Equipment: equipment,
		Tickets:   tickets,
		Feed:      feed,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		AnonKey:   cfg.Service.AnonKey,
	}, &routes.Loggers{
		Main: logger,
		Auth: logger.Named("auth"),
		CRUD: crudLogger,
	})

	// 8. Запуск и корректная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
}
