package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"marketplace-client/config"
	"marketplace-client/internal/client"
	"marketplace-client/internal/gateway"
	"marketplace-client/internal/session"
	"marketplace-client/internal/storage"
	"marketplace-client/internal/tracking"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = config.MustInitRedis(cfg.Redis)
		defer rdb.Close()
	}

	tokens := newTokenStore(cfg.Session, rdb)
	api := client.New(client.Config{BaseURL: cfg.BackendURL}, &http.Client{Timeout: cfg.RequestTimeout})

	ctx := context.Background()
	sess, err := session.Init(ctx, tokens, api)
	if err != nil {
		log.Printf("ERROR: Failed to restore session: %v", err)
	}
	if sess.Anonymous() {
		log.Println("SESSION: starting anonymous")
	} else {
		log.Printf("SESSION: restored session for %s (%s)", sess.User.Email, sess.User.Role)
	}

	publisher, closePublisher, err := config.NewEventPublisher(cfg)
	if err != nil {
		log.Fatal("Failed to init event publisher:", err)
	}
	defer closePublisher()

	opts := []gateway.Option{
		gateway.WithPublisher(publisher),
		gateway.WithQRGenerator(tracking.DefaultQRGenerator{BaseURL: cfg.PublicURL}),
	}
	if rdb != nil {
		opts = append(opts, gateway.WithMenuCache(storage.NewRedisMenuCache(rdb, cfg.Redis.MenuTTL)))
	}
	if cfg.Postgres.Enabled() {
		db := config.MustInitPostgres(cfg.Postgres)
		defer db.Close()

		reports := storage.NewReportRepository(db)
		if err := reports.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		opts = append(opts, gateway.WithReports(reports))
	}

	gw := gateway.NewGateway(gateway.Config{PollInterval: cfg.PollInterval}, api, tokens, sess, opts...)
	handler := gateway.NewHandler(gw, cfg.AllowedOrigins)

	log.Printf("Marketplace web starting on %s (backend %s)", cfg.HTTPAddr, cfg.BackendURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}

// newTokenStore picks where the session token lives between runs.
func newTokenStore(cfg config.SessionConfig, rdb *redis.Client) session.TokenStore {
	if cfg.Store == config.SessionRedis && rdb != nil {
		return storage.NewRedisTokenStore(rdb, cfg.Key)
	}
	return storage.NewFileTokenStore(cfg.File)
}
