package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/retailcore/go-pos/internal/config"
	"github.com/retailcore/go-pos/internal/fulfillment"
	"github.com/retailcore/go-pos/internal/httpx"
	kafkax "github.com/retailcore/go-pos/internal/kafka"
	"github.com/retailcore/go-pos/internal/payment"
	"github.com/retailcore/go-pos/internal/pos"
	"github.com/retailcore/go-pos/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: registered events from the handler, paid events from
	// the ready-to-ship notifier.
	prodReg := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicOrderRegistered, 1024)
	prodReg.Start(ctx)
	prodPaid := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicOrderPaid, 1024)
	prodPaid.Start(ctx)

	// Payment processor (stand-in; Connect is a flag, not a dial)
	processor := payment.NewStripeProcessor()
	processor.Connect(cfg.PaymentURL)

	// POS system & handler
	system := pos.NewSystem(processor,
		pos.WithNotifier(&fulfillment.Notifier{Producer: prodPaid, Service: cfg.ServiceName}),
		pos.WithPaymentTimeout(cfg.PaymentTimeout),
	)
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		POS:      system,
		Producer: prodReg,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prodReg.Close() // close inboxes -> flush & close writers
	prodPaid.Close()
	cancel() // stop producer loops
	prodReg.WaitClosed()
	prodPaid.WaitClosed()
}
