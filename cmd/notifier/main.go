package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/webshop/order-api/internal/config"
	kafkax "github.com/webshop/order-api/internal/kafka"
	"github.com/webshop/order-api/internal/notifier"
	"github.com/webshop/order-api/internal/orders"
	"github.com/webshop/order-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notifier.Service{
		Redis:       rdb,
		Log:         log,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroup,
		orders.TopicOrderPlaced, cfg.NotifierWorkers, log)

	log.Info("notifier consumer started",
		zap.String("group", cfg.NotifierGroup),
		zap.String("topic", orders.TopicOrderPlaced),
		zap.Int("workers", cfg.NotifierWorkers))
	if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
		log.Error("consumer exit", zap.Error(err))
	}

	// give in-flight handlers a moment before the process goes away
	time.Sleep(500 * time.Millisecond)
}
