package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	alerts "visa-bot/internal/common/aws"
	"visa-bot/internal/common/config"
	"visa-bot/internal/common/database"
	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/health"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/common/metrics"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/router"
	"visa-bot/internal/store"
	"visa-bot/internal/transport/telegram"

	stepsequencer "visa-bot/internal/workers/form/step-sequencer"
	showmenu "visa-bot/internal/workers/menu/show-menu"
	paymenthandshake "visa-bot/internal/workers/payment/payment-handshake"
)

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s aborted: %w", operationName, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func run(parent context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting visa bot...",
		zap.String("version", Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store", cfg.Store.Backend),
	)

	checks := map[string]health.Checker{}

	// --- Form store ---
	var redisClient redis.Cmdable
	if cfg.Store.Backend == config.StoreBackendRedis {
		var rc *database.RedisClient
		err = retryWithBackoff(ctx, func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				rc.Close()
				return err
			}
			return nil
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return err
		}
		defer rc.Close()
		redisClient = rc.Client
		checks["redis"] = rc
		zapLog.Info("Redis connected successfully")
	}

	st, err := store.New(cfg.Store, redisClient)
	if err != nil {
		return err
	}
	checks["store"] = st

	// --- Telegram ---
	var api *tgbotapi.BotAPI
	err = retryWithBackoff(ctx, func() error {
		var err error
		api, err = telegram.NewBotAPI(cfg.Telegram)
		return err
	}, 5, 2*time.Second, zapLog, "Telegram authentication")
	if err != nil {
		return err
	}
	zapLog.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	client := telegram.NewClient(api)
	checks["telegram"] = client

	// --- Alerts ---
	var paymentOpts []paymenthandshake.Option
	errorOpts := []apperrors.ErrorHandlerOption{
		apperrors.WithCounter(func(code apperrors.ErrorCode) {
			metrics.EventsFailed.WithLabelValues(string(code)).Inc()
		}),
	}
	if cfg.Alerts.Enabled() {
		mirror, err := alerts.NewAlertMirror(ctx, cfg.Alerts)
		if err != nil {
			return fmt.Errorf("alert mirror: %w", err)
		}
		paymentOpts = append(paymentOpts, paymenthandshake.WithAlertMirror(mirror))
		errorOpts = append(errorOpts, apperrors.WithMirror(mirror))
		zapLog.Info("Alert mirror enabled",
			zap.Bool("email", cfg.Alerts.Email.Enabled),
			zap.Bool("sms", cfg.Alerts.SMS.Enabled),
		)
	}

	// --- Workers ---
	catalog := content.NewCatalog(cfg.Links, cfg.Form.PopularNationalities)

	form := stepsequencer.NewHandler(stepsequencer.LoadConfig(cfg.Form), st, client, catalog, log)
	payments := paymenthandshake.NewHandler(paymenthandshake.LoadConfig(cfg.Telegram), st, client, catalog, log, paymentOpts...)
	menu := showmenu.NewHandler(showmenu.LoadConfig(), client, catalog, log)

	eh := apperrors.NewErrorHandler(log, client, models.Identity(cfg.Telegram.AdminChatID), errorOpts...)
	r := router.New(client, form, payments, menu, eh, log)

	poller := telegram.NewPoller(api, r, cfg.Telegram.PollTimeout, log)
	ops := health.NewServer(cfg.Server.Addr, log, checks)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error { return ops.Run(gctx) })

	err = g.Wait()
	zapLog.Info("Visa bot stopped")
	return err
}
