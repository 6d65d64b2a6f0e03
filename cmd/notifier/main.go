package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/api/handlers/notification"
	"github.com/petclinic/reminder-notifier/internal/api/router"
	"github.com/petclinic/reminder-notifier/internal/api/server"
	"github.com/petclinic/reminder-notifier/internal/channel"
	"github.com/petclinic/reminder-notifier/internal/config"
	"github.com/petclinic/reminder-notifier/internal/dispatch"
	notifrepo "github.com/petclinic/reminder-notifier/internal/repository/notification"
	ownerrepo "github.com/petclinic/reminder-notifier/internal/repository/owner"
	schedrepo "github.com/petclinic/reminder-notifier/internal/repository/schedule"
	"github.com/petclinic/reminder-notifier/internal/scheduler"
	notifsvc "github.com/petclinic/reminder-notifier/internal/service/notification"
	"github.com/petclinic/reminder-notifier/internal/template"
	"github.com/petclinic/reminder-notifier/pkg/email"
	"github.com/petclinic/reminder-notifier/pkg/sms"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notificationRepo := notifrepo.NewRepository(db)
	scheduleRepo := schedrepo.NewRepository(db)
	ownerRepo := ownerrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
		cfg.Scheduler.SendTimeout,
	)
	smsClient := sms.NewClient(
		cfg.SMS.AccountSID,
		cfg.SMS.AuthToken,
		cfg.SMS.FromNumber,
		cfg.Scheduler.SendTimeout,
	)

	senders := []channel.Sender{
		channel.NewEmailSender(emailClient),
		channel.NewSMSSender(smsClient, cfg.SMS.Enabled, cfg.Scheduler.SendTimeout),
	}

	renderer := template.NewRenderer()
	dispatcher := dispatch.NewDispatcher(senders, notificationRepo, rdb, cfg.Retry)

	sched := scheduler.New(
		scheduleRepo,
		notificationRepo,
		dispatcher,
		renderer,
		cfg.Scheduler.SweepInterval,
		cfg.Scheduler.RetryInterval,
	)

	go sched.Run(ctx)

	service := notifsvc.NewService(notificationRepo, scheduleRepo, ownerRepo, dispatcher, renderer, rdb)
	notifHandler := notification.NewHandler(service, val, cfg)

	r := router.New(notifHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
		}
	}

	if err := rdb.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close redis client")
	}
}
