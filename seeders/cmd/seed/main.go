package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"equipment-tracker/internal/repositories"
	"equipment-tracker/pkg/config"
	"equipment-tracker/pkg/database/migrations"
	"equipment-tracker/pkg/database/postgresql"
	applogger "equipment-tracker/pkg/logger"
	"equipment-tracker/seeders"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFiles := pflag.StringSlice("env-file", nil, "env files to load before reading the environment")
	runUser := pflag.Bool("user", false, "create the confirmed demo user")
	runEquipment := pflag.Bool("equipment", false, "insert demo equipment")
	runTickets := pflag.Bool("tickets", false, "insert demo tickets (implies --user and --equipment)")
	runAll := pflag.Bool("all", false, "run every seeder")
	email := pflag.String("email", "", "demo user email (default demo@<ALLOWED_EMAIL_DOMAIN>)")
	password := pflag.String("password", "Demo-Tracker-2024!", "demo user password")
	pflag.Parse()

	logger := applogger.NewLogger()
	defer logger.Sync()

	if !*runUser && !*runEquipment && !*runTickets && !*runAll {
		logger.Warn("Не выбран ни один сидер")
		pflag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*envFiles...)
	if err != nil {
		logger.Fatal("Некорректная конфигурация", zap.Error(err))
	}
	if *email == "" {
		*email = "demo@" + cfg.Auth.AllowedEmailDomain
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("не удалось подключиться к базе данных", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool, logger); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	seeder := seeders.New(repositories.NewTxManager(pool), logger.Named("seed"))
	err = seeder.Run(ctx, seeders.Options{
		User:         *runAll || *runUser,
		Equipment:    *runAll || *runEquipment,
		Tickets:      *runAll || *runTickets,
		DemoEmail:    *email,
		DemoPassword: *password,
	})
	if err != nil {
		logger.Fatal("Ошибка сидирования", zap.Error(err))
	}
	logger.Info("✅ Сидирование завершено")
}
