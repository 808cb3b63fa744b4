package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/retailcore/go-pos/internal/config"
	"github.com/retailcore/go-pos/internal/fulfillment"
	kafkax "github.com/retailcore/go-pos/internal/kafka"
	"github.com/retailcore/go-pos/internal/pos"
	"github.com/retailcore/go-pos/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (consumer dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer for shipped events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicOrderShipped, 1024)
	prod.Start(ctx)

	svc := &fulfillment.Service{
		Redis:       rdb,
		Producer:    prod,
		ServiceName: cfg.ServiceName + "-fulfillment",
	}

	group := getenv("FULFILLMENT_GROUP", "fulfillment-svc")
	workers := mustAtoi(os.Getenv("FULFILLMENT_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, pos.TopicOrderPaid, workers)

	go func() {
		log.Printf("fulfillment consumer started: group=%s topic=%s workers=%d", group, pos.TopicOrderPaid, workers)
		if err := cons.Start(ctx, svc.HandleOrderPaid); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	prod.Close()
	prod.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
