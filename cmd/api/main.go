package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/webshop/order-api/internal/catalog"
	"github.com/webshop/order-api/internal/config"
	"github.com/webshop/order-api/internal/httpx"
	kafkax "github.com/webshop/order-api/internal/kafka"
	"github.com/webshop/order-api/internal/orders"
	"github.com/webshop/order-api/internal/postgres"
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

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("db migrate", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	placed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024, log)
	placed.Start(ctx)
	statusChanged := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024, log)
	statusChanged.Start(ctx)

	// Repos & handlers
	router := httpx.NewRouter(log)
	ph := &httpx.ProductsHandler{Store: &catalog.Repo{DB: db}}
	ph.Register(router)
	oh := &httpx.OrdersHandler{
		Store:         &orders.Repo{DB: db},
		Redis:         rdb,
		Placed:        placed,
		StatusChanged: statusChanged,
		Service:       cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("serve", zap.Error(err))
	}

	// flush pending events before exit
	placed.Close()
	statusChanged.Close()
	placed.WaitClosed()
	statusChanged.WaitClosed()
}
