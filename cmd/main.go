package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/publika-insight/docs"
	"github.com/SergeyBogomolovv/publika-insight/internal/app"
	"github.com/SergeyBogomolovv/publika-insight/internal/auth"
	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/internal/handler"
	"github.com/SergeyBogomolovv/publika-insight/internal/postgres"
	"github.com/SergeyBogomolovv/publika-insight/internal/publisher"
	"github.com/SergeyBogomolovv/publika-insight/internal/repo"
	"github.com/SergeyBogomolovv/publika-insight/internal/service"
	"github.com/SergeyBogomolovv/publika-insight/pkg/cache"
	"github.com/SergeyBogomolovv/publika-insight/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// @title           Publika Insight API
// @version         1.0
// @description     Документация HTTP API сервиса заказов публикаций
// @securityDefinitions.apikey AdminSession
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to migrate db", postgres.Migrate(db))

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	revoked := cache.NewLRUCache(conf.Admin.RevokedCapacity, conf.Admin.SessionTTL)
	events := publisher.NewKafkaPublisher(conf.Kafka)

	orderService := service.NewOrderService(logger, txManager, orderRepo, orderCache, events)

	gate, err := auth.NewGate(logger, conf.Admin, revoked)
	panicIfErr("failed to init session gate", err)

	service.RegisterMetrics(prometheus.DefaultRegisterer)
	auth.RegisterMetrics(prometheus.DefaultRegisterer)
	handler.RegisterMetrics(prometheus.DefaultRegisterer)

	contactLink := entities.ContactLink(conf.Contact.Phone, conf.Contact.Message)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService, gate, contactLink)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(orderCache, revoked, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})
	app.SetClosers(events)

	panicIfErr("failed to start app", app.Start(ctx))

	select {
	case <-ctx.Done():
	case err := <-app.Done():
		logger.Error("shutting down after server failure", slog.Any("error", err))
	}
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
