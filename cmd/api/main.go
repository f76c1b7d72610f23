package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/client"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/metrics"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/repository"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/server"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := setupLogger(cfg.Log)

	rate, err := decimal.NewFromString(cfg.Payment.ConversionRate)
	if err != nil || rate.Sign() <= 0 {
		log.Error("invalid PAYMENT_CONVERSION_RATE", slog.String("value", cfg.Payment.ConversionRate))
		os.Exit(1)
	}

	metrics.Register()

	db := client.InitMysqlClient(cfg.DatabaseURL)
	rdb := client.InitRedisClient(cfg.RedisAddr)
	gatewayClient := client.NewGatewayClient(&cfg.Gateway)

	tokenVerifier, err := client.InitFirebaseVerifier(context.Background())
	if err != nil {
		log.Error("failed to init google token verifier", slog.Any("error", err))
		os.Exit(1)
	}

	courseRepo := repository.NewCourseRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	paymentService := service.NewPaymentService(
		gatewayClient,
		courseRepo,
		purchaseRepo,
		cfg.Gateway,
		cfg.Payment,
		rate,
		log,
	)
	courseService := service.NewCourseService(courseRepo)
	userService := service.NewUserService(userRepo, purchaseRepo, courseRepo, tokenVerifier, cfg.Auth)
	adminService := service.NewAdminService(adminRepo, courseRepo, cfg.Auth)

	rateLimiter := middleware.NewRateLimiter(rdb, log)

	srv := server.NewServer(
		paymentService,
		courseService,
		userService,
		adminService,
		rateLimiter,
		cfg.Auth,
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", slog.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}
}

func setupLogger(logCfg config.Log) *slog.Logger {
	level := slog.LevelInfo
	switch logCfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if logCfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(h)
}
