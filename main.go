package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	appconfig "barbershop-backend/config"
	"barbershop-backend/logger"
	"barbershop-backend/models"
	"barbershop-backend/routes"
	"barbershop-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	cfg := appconfig.Load()
	logger.Init(cfg.Env)

	db, err := appconfig.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		return
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Master{},
		&models.Order{},
		&models.Review{},
		&models.NotificationLog{},
	); err != nil {
		logger.Error("migration failed", "error", err)
		return
	}

	notifier, err := services.NewNotifier(cfg.Notify)
	if err != nil {
		logger.Error("failed to build notifier", "error", err)
		return
	}

	notifications := services.NewNotificationService(db, notifier, cfg.Notify.MaxAttempts)
	moderator := services.NewMistralModerator(cfg.Moderation)

	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Orders:  services.NewOrderService(db, notifications, cfg.AdminBaseURL),
		Reviews: services.NewReviewService(db, moderator, notifications, cfg.Moderation.Thresholds, cfg.AdminBaseURL),
		Masters: services.NewMasterService(db),
	}

	sweeper, err := notifications.StartRetryScheduler(cfg.Notify.RetrySchedule)
	if err != nil {
		logger.Error("failed to start retry scheduler", "error", err)
		return
	}
	defer sweeper.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := routes.SetupRouter(deps)
	printRoutes(r)

	logger.Info("server starting", "port", cfg.Port, "notify_channel", notifier.Name())
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
