package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"cuadrante-bot/internal/config"
	"cuadrante-bot/internal/handler"
	"cuadrante-bot/internal/notify"
	"cuadrante-bot/internal/repository"
	"cuadrante-bot/internal/scheduler"
	"cuadrante-bot/internal/service"
	"cuadrante-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// SQLite keeps foreign keys off unless asked
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	timeEntryRepo, err := repository.NewGormTimeEntryRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create time entry repository")
	}

	scheduleRepo, err := repository.NewGormScheduleEntryRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create schedule repository")
	}

	balanceRepo, err := repository.NewGormPeriodBalanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create period balance repository")
	}

	alertRepo, err := repository.NewGormAlertRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create alert repository")
	}

	markRepo, err := repository.NewGormCalculationMarkRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create calculation mark repository")
	}

	settingRepo, err := repository.NewGormSettingRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create setting repository")
	}

	settingsService := service.NewSettingsService(settingRepo)
	balanceService := service.NewBalanceService(
		timeEntryRepo,
		scheduleRepo,
		balanceRepo,
		alertRepo,
		markRepo,
		userRepo,
		settingsService,
	)
	timeEntryService := service.NewTimeEntryService(timeEntryRepo, balanceService)
	scheduleService := service.NewScheduleService(scheduleRepo, balanceService)
	userService := service.NewUserService(userRepo)

	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	client, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	if cfg.AlertNotifications {
		balanceService.SetNotifier(notify.NewTelegramNotifier(client, cfg.BaseAdminChatID))
	}

	botHandler := handler.NewHandler(
		client,
		userService,
		timeEntryService,
		scheduleService,
		balanceService,
		settingsService,
		cfg,
	)

	sweeper := scheduler.New(balanceService, time.Duration(cfg.RecalcIntervalHrs)*time.Hour)
	sweeper.Start()

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	sweeper.Stop()

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
