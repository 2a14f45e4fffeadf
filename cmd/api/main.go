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

	"github.com/ecofinds/ecofinds-backend/internal/auth"
	"github.com/ecofinds/ecofinds-backend/internal/cart"
	"github.com/ecofinds/ecofinds-backend/internal/catalog"
	"github.com/ecofinds/ecofinds-backend/internal/config"
	"github.com/ecofinds/ecofinds-backend/internal/httpx"
	kafkax "github.com/ecofinds/ecofinds-backend/internal/kafka"
	"github.com/ecofinds/ecofinds-backend/internal/orders"
	"github.com/ecofinds/ecofinds-backend/internal/postgres"
	"github.com/ecofinds/ecofinds-backend/internal/redisx"
	"github.com/ecofinds/ecofinds-backend/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB: connect and migrate before anything serves traffic.
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	tokens := auth.Tokens{
		Secret:        cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}

	usersRepo := &users.Repo{DB: db}
	authn := &httpx.Authenticator{Tokens: tokens, Users: usersRepo}

	router := httpx.NewRouter()
	(&httpx.AuthHandler{
		Users:  usersRepo,
		Tokens: tokens,
		Auth:   authn,
	}).Register(router)
	(&httpx.ProductsHandler{
		Catalog: &catalog.Repo{DB: db},
		Redis:   rdb,
		Auth:    authn,
	}).Register(router)
	(&httpx.UsersHandler{
		Cart:     &cart.Repo{DB: db},
		Orders:   &orders.Repo{DB: db},
		Producer: prod,
		Auth:     authn,
		Service:  cfg.ServiceName,
	}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()     // stop producer loop
	prod.WaitClosed()
}
