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

	"github.com/you/hotel-booking/internal/consumer"
	"github.com/you/hotel-booking/internal/repository"
	"github.com/you/hotel-booking/internal/service"
	transport "github.com/you/hotel-booking/internal/transport/http"
	"github.com/you/hotel-booking/pkg/config"
	"github.com/you/hotel-booking/pkg/db"
	"github.com/you/hotel-booking/pkg/mq"
	"github.com/you/hotel-booking/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("hotel-booking")
	defer func() { _ = shutdownTracer(context.Background()) }()

	// DB + repos
	gdb := db.Open(cfg.PGBookingDSN)
	bookingRepo := repository.NewBookingRepo(gdb)
	userRepo := repository.NewUserRepo(gdb)
	hotelRepo := repository.NewHotelRepo(gdb)
	paymentRepo := repository.NewPaymentRepo(gdb)
	reviewRepo := repository.NewReviewRepo(gdb)
	for _, m := range []func() error{
		userRepo.Migrate, hotelRepo.Migrate, bookingRepo.Migrate,
		paymentRepo.Migrate, reviewRepo.Migrate,
	} {
		if err := m(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	// Payment events out, booking transitions in.
	paymentPub := must(mq.NewPublisher(cfg.RabbitURL, cfg.PaymentExchange))
	defer paymentPub.Close()

	bookingSvc := service.NewBookingSvc(bookingRepo, userRepo, hotelRepo, hotelRepo)
	paymentSvc := service.NewPaymentSvc(paymentRepo, bookingRepo, hotelRepo, hotelRepo, paymentPub)
	authSvc := service.NewAuthSvc(userRepo, time.Duration(cfg.JWTExpireMin)*time.Minute)
	catalogSvc := service.NewCatalogSvc(hotelRepo)
	reviewSvc := service.NewReviewSvc(reviewRepo, bookingRepo, hotelRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paymentCons := must(mq.NewConsumer(cfg.RabbitURL, cfg.PaymentExchange, cfg.PaymentQueue,
		[]string{service.RoutingPaymentCompleted, service.RoutingPaymentFailed}))
	defer paymentCons.Close()
	pc := consumer.NewPaymentConsumer(bookingSvc, bookingRepo, paymentCons)
	if err := pc.Run(ctx); err != nil {
		log.Fatalf("payment consumer: %v", err)
	}
	log.Println("[api] payment consumer started")

	r := transport.NewRouter(transport.Services{
		Auth:     authSvc,
		Catalog:  catalogSvc,
		Bookings: bookingSvc,
		Payments: paymentSvc,
		Reviews:  reviewSvc,
	}, cfg.CORSOrigin)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Println("[api] http listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	log.Println("[api] stopped")
}
